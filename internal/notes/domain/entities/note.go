// Package entities defines the domain entities for the notes service.
package entities

import "time"

// TimeLayout - формат времени в ответах API (yyyy-MM-dd HH:mm:ss).
const TimeLayout = "2006-01-02 15:04:05"

// Note представляет собой заметку.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewNote creates a new note with the given text and the current server time.
func NewNote(text string) *Note {
	return &Note{
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NoteView - внешнее представление заметки с отформатированным временем.
// Незаполненные поля не попадают в сериализованный JSON.
type NoteView struct {
	ID   int64  `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
	Time string `json:"time,omitempty"`
}

// View возвращает представление заметки без преобразования часового пояса.
func (n *Note) View() NoteView {
	return NoteView{
		ID:   n.ID,
		Text: n.Text,
		Time: n.Timestamp.Format(TimeLayout),
	}
}

// ViewIn возвращает представление заметки со временем в указанном часовом поясе.
func (n *Note) ViewIn(loc *time.Location) NoteView {
	return NoteView{
		ID:   n.ID,
		Text: n.Text,
		Time: n.Timestamp.In(loc).Format(TimeLayout),
	}
}
