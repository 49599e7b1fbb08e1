package ports

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
)

func parseProfileIDs(raw string) ([]domain.ProfileID, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: no profile ids given", domain.ErrInvalidProfileID)
	}

	parts := strings.Split(raw, ",")
	profileIDs := make([]domain.ProfileID, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProfileID, part)
		}
		profileID := domain.ProfileID(id)
		if !profileID.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidProfileID, id)
		}
		profileIDs = append(profileIDs, profileID)
	}
	return profileIDs, nil
}

func parseProfileID(raw string) (*domain.ProfileID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProfileID, raw)
	}
	profileID := domain.ProfileID(id)
	if !profileID.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidProfileID, id)
	}
	return &profileID, nil
}

// parseSeconds reads a positive duration given as whole seconds.
func parseSeconds(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseBool(raw string) (bool, error) {
	switch raw {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}
