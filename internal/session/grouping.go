package session

import "loom/internal/types"

// DisplayGroup is one rendered unit: either a single user message or a run
// of agent/tool messages belonging to the same turn.
type DisplayGroup struct {
	Messages []types.SessionMessage
}

func (g DisplayGroup) IsUser() bool {
	return len(g.Messages) == 1 && g.Messages[0].Role == types.MessageRoleUser
}

// ResponseID returns the shared response id of the group, empty for user
// messages and legacy entries.
func (g DisplayGroup) ResponseID() string {
	if len(g.Messages) == 0 {
		return ""
	}
	return g.Messages[0].ResponseID
}

// FromInstanceID returns the origin session of a relayed group, empty when
// the group originated in the viewed session.
func (g DisplayGroup) FromInstanceID() string {
	if len(g.Messages) == 0 {
		return ""
	}
	return g.Messages[0].FromInstanceID
}

// GroupMessages folds an ordered message sequence into display groups in one
// left-to-right pass. A user message always stands alone. A non-user message
// joins the open group only when all three predicates hold: the group's
// response id matches, that id is non-empty, and the origin session matches.
// Entries without a response id never merge, even with identical neighbors;
// that is the conservative default for legacy entries. The origin check
// keeps two agents' turns, or a cross-session relay reusing a response id,
// out of one bubble.
func GroupMessages(messages []types.SessionMessage) []DisplayGroup {
	groups := make([]DisplayGroup, 0, len(messages))
	var open *DisplayGroup

	flush := func() {
		if open != nil {
			groups = append(groups, *open)
			open = nil
		}
	}

	for _, msg := range messages {
		if msg.Role == types.MessageRoleUser {
			flush()
			groups = append(groups, DisplayGroup{Messages: []types.SessionMessage{msg}})
			continue
		}
		if open != nil &&
			msg.ResponseID != "" &&
			msg.ResponseID == open.Messages[0].ResponseID &&
			msg.FromInstanceID == open.Messages[0].FromInstanceID {
			open.Messages = append(open.Messages, msg)
			continue
		}
		flush()
		open = &DisplayGroup{Messages: []types.SessionMessage{msg}}
	}
	flush()
	return groups
}
