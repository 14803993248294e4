package vpagateway

import (
	"sync"
	"time"

	"github.com/dekarrin/vpagen/vpa"
	"github.com/google/uuid"
)

// grammarEntry holds everything needed to serve recognize/parse/translate
// requests for one compiled grammar. The recognizer and translator both
// build their own automaton.Table from the same grammar text; they're kept
// side by side rather than sharing one so translate requests work even
// though vpa.Translator doesn't expose a bare Recognize.
type grammarEntry struct {
	source     string
	owner      uuid.UUID
	recognizer *vpa.Recognizer
	translator *vpa.Translator
}

// Gateway is the HTTP surface for the generator: it holds compiled grammars
// keyed by ID and the credentials allowed to use them.
type Gateway struct {
	secret      []byte
	unauthDelay time.Duration

	mu       sync.RWMutex
	keys     map[uuid.UUID]APIKey
	grammars map[uuid.UUID]*grammarEntry
}

// New creates a Gateway that signs tokens with secret and accepts the given
// API keys. unauthDelay is how long the 401 for a request without a valid
// bearer token is held before being written, to deprioritize processing of
// such requests; other error responses, including a rejected POST
// /v1/tokens, are written without delay.
func New(secret []byte, keys []APIKey, unauthDelay time.Duration) *Gateway {
	gw := &Gateway{
		secret:      secret,
		unauthDelay: unauthDelay,
		keys:        make(map[uuid.UUID]APIKey, len(keys)),
		grammars:    make(map[uuid.UUID]*grammarEntry),
	}
	for _, k := range keys {
		gw.keys[k.ID] = k
	}
	return gw
}

func (gw *Gateway) compile(grammarText string, owner uuid.UUID) (uuid.UUID, error) {
	recognizer, err := vpa.NewRecognizer(grammarText)
	if err != nil {
		return uuid.UUID{}, err
	}
	translator, err := vpa.NewTranslator(grammarText)
	if err != nil {
		return uuid.UUID{}, err
	}

	id := uuid.New()
	gw.mu.Lock()
	gw.grammars[id] = &grammarEntry{source: grammarText, owner: owner, recognizer: recognizer, translator: translator}
	gw.mu.Unlock()
	return id, nil
}

// grammar looks up a compiled grammar by ID, scoped to the key that created
// it - a grammar belonging to one API key is invisible to every other key.
func (gw *Gateway) grammar(id, owner uuid.UUID) (*grammarEntry, bool) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	g, ok := gw.grammars[id]
	if !ok || g.owner != owner {
		return nil, false
	}
	return g, true
}
