package repository

import "github.com/goliatone/go-hooks/pkg/model"

// store is an insertion ordered map keyed by hook name. Replacing a key keeps
// its original position.
type store struct {
	index map[string]int
	items []*model.Hook
}

func newStore() *store {
	return &store{index: make(map[string]int)}
}

func (s *store) get(name string) (*model.Hook, bool) {
	pos, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.items[pos], true
}

func (s *store) set(name string, hook *model.Hook) {
	if pos, ok := s.index[name]; ok {
		s.items[pos] = hook
		return
	}
	s.index[name] = len(s.items)
	s.items = append(s.items, hook)
}

func (s *store) values() []*model.Hook {
	return append([]*model.Hook(nil), s.items...)
}

func (s *store) len() int {
	return len(s.items)
}

func (s *store) clear() {
	s.index = make(map[string]int)
	s.items = nil
}
