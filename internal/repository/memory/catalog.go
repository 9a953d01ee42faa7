package memory

import (
	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/repository"
)

type itemCatalog struct {
	items *ordered[string, domain.Item]
}

func NewItemCatalog() repository.ItemCatalog {
	return &itemCatalog{items: newOrdered[string, domain.Item]()}
}

func (c *itemCatalog) Get(id string) (domain.Item, bool) {
	item, ok := c.items.get(id)
	if !ok {
		return nil, false
	}
	return domain.CloneItem(item), true
}

func (c *itemCatalog) Put(item domain.Item) {
	c.items.put(item.Base().ID, domain.CloneItem(item))
}

func (c *itemCatalog) Remove(id string) bool {
	return c.items.remove(id)
}

func (c *itemCatalog) All() []domain.Item {
	var out []domain.Item
	c.items.each(func(item domain.Item) {
		out = append(out, domain.CloneItem(item))
	})
	return out
}

func (c *itemCatalog) Count() int {
	return c.items.count()
}

func (c *itemCatalog) SetStatus(id string, status domain.ItemStatus) bool {
	return c.items.update(id, func(item domain.Item) {
		item.Base().Status = status
	})
}

func (c *itemCatalog) Clear() {
	c.items.clear()
}
