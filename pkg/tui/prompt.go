package tui

import (
	"github.com/DrSkyle/roadmap/pkg/editor"
)

// replayPrompter hands the editor an answer the modal already collected.
// Unarmed, it behaves like a cancelled prompt.
type replayPrompter struct {
	answer string
	ok     bool
	armed  bool
}

func (r *replayPrompter) arm(answer string, ok bool) {
	r.answer, r.ok, r.armed = answer, ok, true
}

func (r *replayPrompter) Prompt(editor.Prompt) (string, bool) {
	if !r.armed {
		return "", false
	}
	r.armed = false
	return r.answer, r.ok
}

// noticeBuffer keeps the latest notice for the status line.
type noticeBuffer struct {
	last editor.Notice
	seq  int
}

func (b *noticeBuffer) Notify(n editor.Notice) {
	b.last = n
	b.seq++
}

func (b *noticeBuffer) post(kind editor.NoticeKind, msg string) {
	b.Notify(editor.Notice{Kind: kind, Message: msg})
}

// pendingPrompt is an action waiting on the text modal.
type pendingPrompt struct {
	action editor.Action
	prompt editor.Prompt
}

// pendingConfirm is an action waiting on a yes/no answer.
type pendingConfirm struct {
	action   editor.Action
	question string
}
