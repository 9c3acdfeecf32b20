package frontier

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// RunID identifies a single search run between two resets.
type RunID string

type RunIDProvider interface {
	NextRunID() RunID
}

var _ RunIDProvider = &UUIDRunIDProvider{}
var _ RunIDProvider = &IncreasingRunIDProvider{}

type UUIDProviderFn func() (uuid.UUID, error)

type UUIDRunIDProvider struct {
	nextUUIDFn UUIDProviderFn
}

func NewUUIDRunIDProvider() *UUIDRunIDProvider {
	return &UUIDRunIDProvider{
		nextUUIDFn: func() (uuid.UUID, error) { return uuid.NewRandom() },
	}
}

func NewCustomUUIDRunIDProvider(nextUUIDFn UUIDProviderFn) *UUIDRunIDProvider {
	return &UUIDRunIDProvider{
		nextUUIDFn: nextUUIDFn,
	}
}

func (p *UUIDRunIDProvider) NextRunID() RunID {
	rid, err := p.nextUUIDFn()
	if err != nil {
		id := hex.EncodeToString([]byte(err.Error() + time.Now().String()))
		return RunID(fmt.Sprintf("%s (with error: %s)", id, err))
	}
	return RunID(rid.String())
}

// IncreasingRunIDProvider hands out "1", "2", ... and is safe for concurrent use.
type IncreasingRunIDProvider struct {
	id int64
}

func NewIncreasingRunIDProvider() *IncreasingRunIDProvider {
	return &IncreasingRunIDProvider{}
}

func (i *IncreasingRunIDProvider) NextRunID() RunID {
	return RunID(strconv.FormatInt(atomic.AddInt64(&i.id, 1), 10))
}
