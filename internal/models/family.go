package models

// FamilyMember - проекция участника семьи, только для чтения
type FamilyMember struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Role           string         `json:"role"`
	Email          string         `json:"email,omitempty"`
	ResponseStatus ResponseStatus `json:"response_status,omitempty"`
}

// IDSet - множество идентификаторов. Отсутствие ключа означает "не входит".
type IDSet map[string]struct{}

// NewIDSet создает множество из перечисленных идентификаторов
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id string) {
	delete(s, id)
}

func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}
