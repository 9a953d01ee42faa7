package memory

import (
	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/repository"
)

type memberDirectory struct {
	members *ordered[int, *domain.Member]
}

func NewMemberDirectory() repository.MemberDirectory {
	return &memberDirectory{members: newOrdered[int, *domain.Member]()}
}

func (d *memberDirectory) Get(id int) (*domain.Member, bool) {
	m, ok := d.members.get(id)
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

func (d *memberDirectory) Put(member *domain.Member) {
	d.members.put(member.ID, member.Clone())
}

func (d *memberDirectory) Remove(id int) bool {
	return d.members.remove(id)
}

func (d *memberDirectory) All() []*domain.Member {
	var out []*domain.Member
	d.members.each(func(m *domain.Member) {
		out = append(out, m.Clone())
	})
	return out
}

func (d *memberDirectory) Count() int {
	return d.members.count()
}

func (d *memberDirectory) AppendRental(memberID int, rentalID string) bool {
	return d.members.update(memberID, func(m *domain.Member) {
		m.AddRental(rentalID)
	})
}

func (d *memberDirectory) Clear() {
	d.members.clear()
}
