package loop

import "sync"

const mailboxSlots = 8

// mailbox is a fixed-size multi-producer, single-consumer command queue.
type mailbox struct {
	_     [0]func() // prevent accidental copying.
	mu    sync.Mutex
	head  uint32
	tail  uint32
	slots [mailboxSlots]Command
}

// TrySend enqueues cmd, returning false if the mailbox is full.
func (mb *mailbox) TrySend(cmd Command) bool {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.head-mb.tail >= mailboxSlots {
		return false
	}
	mb.slots[mb.head%mailboxSlots] = cmd
	mb.head++
	return true
}

// TryRecv dequeues one command, returning false if empty.
func (mb *mailbox) TryRecv() (Command, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.tail == mb.head {
		return Command{}, false
	}
	cmd := mb.slots[mb.tail%mailboxSlots]
	mb.slots[mb.tail%mailboxSlots] = Command{}
	mb.tail++
	return cmd, true
}
