package postgres

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
)

// decodeSeasons reads the JSONB seasons column. Object keys are season years.
func decodeSeasons(raw []byte) (map[int]player.Season, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[int]player.Season{}, nil
	}

	var byYear map[string]player.Season
	if err := sonic.Unmarshal(raw, &byYear); err != nil {
		return nil, fmt.Errorf("decode seasons: %w", err)
	}

	out := make(map[int]player.Season, len(byYear))
	for key, season := range byYear {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decode seasons: invalid year %q", key)
		}
		out[year] = season
	}
	return out, nil
}

func encodeSeasons(seasons map[int]player.Season) ([]byte, error) {
	byYear := make(map[string]player.Season, len(seasons))
	for year, season := range seasons {
		byYear[strconv.Itoa(year)] = season
	}
	raw, err := sonic.Marshal(byYear)
	if err != nil {
		return nil, fmt.Errorf("encode seasons: %w", err)
	}
	return raw, nil
}
