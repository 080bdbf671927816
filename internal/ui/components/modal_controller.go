package components

import "sync"

// Document is the page a modal is mounted in.
type Document interface {
	LockScroll()
	UnlockScroll()
	// AddKeyListener registers fn for key presses and returns its remover.
	AddKeyListener(fn func(key string)) (remove func())
	Focus(target string)
}

// ClickTarget identifies what a click inside an open modal landed on.
type ClickTarget int

const (
	OverlayTarget ClickTarget = iota
	ContentTarget
)

// ModalController drives the open/close lifecycle of one modal. Every close
// path releases the scroll lock and key listener exactly once. modal.js
// follows the same lifecycle in the browser, reading the close flags that
// Render takes from the controller.
type ModalController struct {
	mu           sync.Mutex
	doc          Document
	id           string
	overlayClose bool
	escapeClose  bool
	onClose      func()
	open         bool
	removeKey    func()
}

func NewModalController(doc Document, m Modal, onClose func()) *ModalController {
	return &ModalController{
		doc:          doc,
		id:           m.ID,
		overlayClose: m.CloseOnOverlayClick(),
		escapeClose:  m.CloseOnEscape(),
		onClose:      onClose,
	}
}

func (c *ModalController) ClosesOnOverlay() bool { return c.overlayClose }

func (c *ModalController) ClosesOnEscape() bool { return c.escapeClose }

func (c *ModalController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		return
	}
	c.open = true
	c.doc.LockScroll()
	if c.escapeClose {
		c.removeKey = c.doc.AddKeyListener(c.key)
	}
	c.doc.Focus(c.id)
}

func (c *ModalController) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *ModalController) Close() {
	c.close(true)
}

// OverlayClick closes the modal only when the overlay itself was clicked and
// the modal allows it.
func (c *ModalController) OverlayClick(target ClickTarget) {
	if target != OverlayTarget || !c.overlayClose {
		return
	}
	c.close(true)
}

// Unmount releases the document without notifying onClose.
func (c *ModalController) Unmount() {
	c.close(false)
}

func (c *ModalController) key(key string) {
	if key == "Escape" {
		c.close(true)
	}
}

func (c *ModalController) close(notify bool) {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}
	c.open = false
	remove := c.removeKey
	c.removeKey = nil
	c.doc.UnlockScroll()
	c.mu.Unlock()

	if remove != nil {
		remove()
	}
	if notify && c.onClose != nil {
		c.onClose()
	}
}
