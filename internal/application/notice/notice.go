package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Level severidad del aviso.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice aviso breve para el usuario (equivalente a un toast).
type Notice struct {
	ID          string    `json:"id"`
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// Notifier recibe avisos.
type Notifier interface {
	Notify(n Notice)
}

func Success(title, description string) Notice {
	return Notice{Level: LevelSuccess, Title: title, Description: description}
}

func Info(title, description string) Notice {
	return Notice{Level: LevelInfo, Title: title, Description: description}
}

func Error(title, description string) Notice {
	return Notice{Level: LevelError, Title: title, Description: description}
}

// DefaultCapacity avisos retenidos por Feed.
const DefaultCapacity = 50

// Feed conserva los últimos avisos y los registra en el log.
type Feed struct {
	mu       sync.Mutex
	items    []Notice
	capacity int
	log      zerolog.Logger
	now      func() time.Time
}

var _ Notifier = (*Feed)(nil)

// NewFeed crea un feed; capacity <= 0 usa DefaultCapacity.
func NewFeed(capacity int, log zerolog.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity, log: log, now: time.Now}
}

// Notify asigna id y hora y agrega el aviso; descarta el más antiguo al llenarse.
func (f *Feed) Notify(n Notice) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	f.mu.Lock()
	if n.At.IsZero() {
		n.At = f.now()
	}
	f.items = append(f.items, n)
	if len(f.items) > f.capacity {
		f.items = f.items[len(f.items)-f.capacity:]
	}
	f.mu.Unlock()

	ev := f.log.Info()
	if n.Level == LevelError {
		ev = f.log.Warn()
	}
	ev.Str("level", string(n.Level)).Str("title", n.Title).Str("description", n.Description).Msg("aviso")
}

// List copia de los avisos, del más antiguo al más reciente.
func (f *Feed) List() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notice, len(f.items))
	copy(out, f.items)
	return out
}

// Last último aviso, si hay.
func (f *Feed) Last() (Notice, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return Notice{}, false
	}
	return f.items[len(f.items)-1], true
}

// Drain devuelve los avisos y vacía el feed.
func (f *Feed) Drain() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		return []Notice{}
	}
	return out
}
