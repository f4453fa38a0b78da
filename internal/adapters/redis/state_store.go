package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/ports"
	"github.com/redis/go-redis/v9"
)

// stateTTL bounds one login attempt. Matches the lifetime of the
// oauth_state cookie issued alongside it.
const stateTTL = time.Hour

// StateStore records in-flight login attempts keyed by state token.
// Consume uses GETDEL so a state token can be consumed exactly once; a
// concurrent replay of the same token loses the race and fails.
type StateStore struct {
	client redis.UniversalClient
	prefix string
}

// NewStateStore creates a new Redis-based login-state store.
func NewStateStore(client redis.UniversalClient) *StateStore {
	return &StateStore{
		client: client,
		prefix: "oauth:state:",
	}
}

func (s *StateStore) Save(ctx context.Context, st domainauth.LoginState) error {
	if st.State == "" {
		return errors.New("state token cannot be empty")
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal login state: %w", err)
	}

	return s.client.Set(ctx, s.prefix+st.State, data, stateTTL).Err()
}

func (s *StateStore) Consume(ctx context.Context, token string) (domainauth.LoginState, error) {
	if token == "" {
		return domainauth.LoginState{}, ports.ErrStateNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.LoginState{}, ports.ErrStateNotFound
		}
		return domainauth.LoginState{}, fmt.Errorf("redis getdel: %w", err)
	}

	var st domainauth.LoginState
	if unmarshalErr := json.Unmarshal([]byte(data), &st); unmarshalErr != nil {
		return domainauth.LoginState{}, fmt.Errorf("unmarshal login state: %w", unmarshalErr)
	}
	return st, nil
}
