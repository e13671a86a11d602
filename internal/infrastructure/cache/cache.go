package cache

import (
	"sync"
	"time"
)

// Item é uma entrada do cache com seu instante de expiração
type Item struct {
	Value      interface{}
	Expiration int64
}

// Cache é um cache em memória com expiração por TTL. É o armazenamento das
// sessões do assistente de importação: fechar o assistente ou deixar a
// sessão expirar descarta tudo que estava em memória, sem tocar no banco.
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
}

// New cria um cache e inicia a limpeza periódica de itens expirados
func New() *Cache {
	c := &Cache{
		items: make(map[string]Item),
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			c.DeleteExpired()
		}
	}()

	return c
}

// Set grava um item com a duração informada
func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
	}
}

// Get retorna um item e um booleano indicando se ele existe e não expirou
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}
	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}
	return item.Value, true
}

// Delete remove um item
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// DeleteExpired remove todos os itens expirados
func (c *Cache) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for k, v := range c.items {
		if now > v.Expiration {
			delete(c.items, k)
		}
	}
}
