package form

import "fmt"

// Confirmer хранит действие, ожидающее подтверждения.
// Без явного подтверждения действие не выполняется.
type Confirmer[T any] struct {
	target  T
	label   string
	pending bool
}

// Open запоминает цель и открывает диалог.
func (c *Confirmer[T]) Open(target T, label string) {
	c.target = target
	c.label = label
	c.pending = true
}

// Pending сообщает, что диалог открыт.
func (c *Confirmer[T]) Pending() bool {
	return c.pending
}

// Prompt возвращает текст вопроса.
func (c *Confirmer[T]) Prompt() string {
	return fmt.Sprintf("Удалить «%s»? Это действие нельзя отменить. "+
		"Данные будут удалены безвозвратно. (y/n)", c.label)
}

// Cancel закрывает диалог без действия.
func (c *Confirmer[T]) Cancel() {
	var zero T
	c.target = zero
	c.label = ""
	c.pending = false
}

// Accept закрывает диалог и возвращает цель.
// ok == false, если диалог не был открыт.
func (c *Confirmer[T]) Accept() (T, bool) {
	if !c.pending {
		var zero T
		return zero, false
	}
	target := c.target
	c.Cancel()
	return target, true
}
