package cart

import "sync"

// Line is one (event, quantity) pair in a session cart. Price is the unit
// price snapshot taken when the line was created; checkout charges this
// price, not whatever the catalog says later.
type Line struct {
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	VendorLabel string `json:"vendor"`
	ImageURL    string `json:"image_url"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Store holds one session's cart. It lives and dies with the session and
// is never persisted.
type Store struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

func NewStore() *Store {
	return &Store{lines: make(map[string]*Line)}
}

// Add merges into an existing line for the same event by summing
// quantities, otherwise appends a new line.
func (s *Store) Add(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.lines[line.EventID]; ok {
		existing.Quantity += line.Quantity
		return
	}

	l := line
	s.lines[line.EventID] = &l
	s.order = append(s.order, line.EventID)
}

// SetQuantity replaces a line's quantity. Values below 1 are ignored;
// removal is an explicit operation.
func (s *Store) SetQuantity(eventID string, n int) {
	if n < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lines[eventID]; ok {
		l.Quantity = n
	}
}

func (s *Store) Remove(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[eventID]; !ok {
		return
	}

	delete(s.lines, eventID)
	for i, id := range s.order {
		if id == eventID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]*Line)
	s.order = nil
}

// Lines returns the cart contents in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lines[id])
	}
	return out
}

// Total is the sum of price snapshot times quantity over all lines.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Price * l.Quantity
	}
	return total
}

// Count is the sum of quantities, not the number of lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}
