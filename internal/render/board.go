package render

import (
	"sync"
	"time"
)

// Row is one rendered asset line.
type Row struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	IconClass   string `json:"icon_class"`
	Name        string `json:"name"`
	MarketCap   string `json:"market_cap"`
	Price       string `json:"price"`
	Change      string `json:"change"`
	ChangeClass string `json:"change_class"`
}

// Board is the full visible list plus its last-updated stamp.
type Board struct {
	Rows      []Row     `json:"rows"`
	Timestamp string    `json:"timestamp"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Empty reports whether the board has never been rendered.
func (b Board) Empty() bool {
	return b.UpdatedAt.IsZero()
}

// Store holds the board currently on display. Each render replaces it
// wholesale; concurrent renders resolve as last write wins.
type Store struct {
	mu    sync.RWMutex
	board Board
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new board.
func (s *Store) Replace(b Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
}

// Board returns a copy of the current board.
func (s *Store) Board() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.board
	b.Rows = append([]Row(nil), s.board.Rows...)
	return b
}
