package client

import "sync"

// Credential is the slot holding the active bearer token. An empty token
// means no credential is active and requests go out without an
// Authorization header. Safe for concurrent use.
type Credential struct {
	mu    sync.RWMutex
	token string
}

func (c *Credential) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Credential) Clear() {
	c.Set("")
}

func (c *Credential) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Credential) Active() bool {
	return c.Token() != ""
}
