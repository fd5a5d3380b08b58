package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Theme is a Lichess puzzle theme tag, serialized in the dataset's camelCase form
type Theme string

const (
	ThemeAdvancedPawn      Theme = "advancedPawn"
	ThemeAdvantage         Theme = "advantage"
	ThemeAnastasiaMate     Theme = "anastasiaMate"
	ThemeArabianMate       Theme = "arabianMate"
	ThemeAttackingF2F7     Theme = "attackingF2F7"
	ThemeAttraction        Theme = "attraction"
	ThemeBackRankMate      Theme = "backRankMate"
	ThemeBishopEndgame     Theme = "bishopEndgame"
	ThemeBodenMate         Theme = "bodenMate"
	ThemeCapturingDefender Theme = "capturingDefender"
	ThemeCastling          Theme = "castling"
	ThemeClearance         Theme = "clearance"
	ThemeCrushing          Theme = "crushing"
	ThemeDefensiveMove     Theme = "defensiveMove"
	ThemeDeflection        Theme = "deflection"
	ThemeDiscoveredAttack  Theme = "discoveredAttack"
	ThemeDoubleBishopMate  Theme = "doubleBishopMate"
	ThemeDoubleCheck       Theme = "doubleCheck"
	ThemeDovetailMate      Theme = "dovetailMate"
	ThemeEnPassant         Theme = "enPassant"
	ThemeEndgame           Theme = "endgame"
	ThemeEquality          Theme = "equality"
	ThemeExposedKing       Theme = "exposedKing"
	ThemeFork              Theme = "fork"
	ThemeHangingPiece      Theme = "hangingPiece"
	ThemeHookMate          Theme = "hookMate"
	ThemeInterference      Theme = "interference"
	ThemeIntermezzo        Theme = "intermezzo"
	ThemeKingsideAttack    Theme = "kingsideAttack"
	ThemeKnightEndgame     Theme = "knightEndgame"
	ThemeLong              Theme = "long"
	ThemeMaster            Theme = "master"
	ThemeMasterVsMaster    Theme = "masterVsMaster"
	ThemeMate              Theme = "mate"
	ThemeMateIn1           Theme = "mateIn1"
	ThemeMateIn2           Theme = "mateIn2"
	ThemeMateIn3           Theme = "mateIn3"
	ThemeMateIn4           Theme = "mateIn4"
	ThemeMateIn5           Theme = "mateIn5"
	ThemeMiddlegame        Theme = "middlegame"
	ThemeOneMove           Theme = "oneMove"
	ThemeOpening           Theme = "opening"
	ThemePawnEndgame       Theme = "pawnEndgame"
	ThemePin               Theme = "pin"
	ThemePromotion         Theme = "promotion"
	ThemeQueenEndgame      Theme = "queenEndgame"
	ThemeQueenRookEndgame  Theme = "queenRookEndgame"
	ThemeQueensideAttack   Theme = "queensideAttack"
	ThemeQuietMove         Theme = "quietMove"
	ThemeRookEndgame       Theme = "rookEndgame"
	ThemeSacrifice         Theme = "sacrifice"
	ThemeShort             Theme = "short"
	ThemeSkewer            Theme = "skewer"
	ThemeSmotheredMate     Theme = "smotheredMate"
	ThemeSuperGM           Theme = "superGM"
	ThemeTrappedPiece      Theme = "trappedPiece"
	ThemeUnderPromotion    Theme = "underPromotion"
	ThemeVeryLong          Theme = "veryLong"
	ThemeXRayAttack        Theme = "xRayAttack"
	ThemeZugzwang          Theme = "zugzwang"
)

// AllThemes lists the full theme vocabulary in declaration order
var AllThemes = []Theme{
	ThemeAdvancedPawn, ThemeAdvantage, ThemeAnastasiaMate, ThemeArabianMate,
	ThemeAttackingF2F7, ThemeAttraction, ThemeBackRankMate, ThemeBishopEndgame,
	ThemeBodenMate, ThemeCapturingDefender, ThemeCastling, ThemeClearance,
	ThemeCrushing, ThemeDefensiveMove, ThemeDeflection, ThemeDiscoveredAttack,
	ThemeDoubleBishopMate, ThemeDoubleCheck, ThemeDovetailMate, ThemeEnPassant,
	ThemeEndgame, ThemeEquality, ThemeExposedKing, ThemeFork,
	ThemeHangingPiece, ThemeHookMate, ThemeInterference, ThemeIntermezzo,
	ThemeKingsideAttack, ThemeKnightEndgame, ThemeLong, ThemeMaster,
	ThemeMasterVsMaster, ThemeMate, ThemeMateIn1, ThemeMateIn2,
	ThemeMateIn3, ThemeMateIn4, ThemeMateIn5, ThemeMiddlegame,
	ThemeOneMove, ThemeOpening, ThemePawnEndgame, ThemePin,
	ThemePromotion, ThemeQueenEndgame, ThemeQueenRookEndgame, ThemeQueensideAttack,
	ThemeQuietMove, ThemeRookEndgame, ThemeSacrifice, ThemeShort,
	ThemeSkewer, ThemeSmotheredMate, ThemeSuperGM, ThemeTrappedPiece,
	ThemeUnderPromotion, ThemeVeryLong, ThemeXRayAttack, ThemeZugzwang,
}

var knownThemes = func() map[Theme]struct{} {
	m := make(map[Theme]struct{}, len(AllThemes))
	for _, t := range AllThemes {
		m[t] = struct{}{}
	}
	return m
}()

// ErrUnknownTheme is returned for tokens outside the theme vocabulary
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme parses a single dataset token. Matching is case-sensitive.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if _, ok := knownThemes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return t, nil
}

// ParseThemes parses a whitespace-separated list of theme tokens
func ParseThemes(s string) ([]Theme, error) {
	fields := strings.Fields(s)
	themes := make([]Theme, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTheme(f)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, nil
}

func (t Theme) String() string { return string(t) }

// UnmarshalText rejects themes outside the vocabulary
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HealthyMixValue is the JSON form of the healthy mix theme choice
const HealthyMixValue = "healthyMix"

// ThemeChoice selects puzzles either by an explicit theme list (any overlap
// matches) or as a healthy mix, whose balance is left to the repository.
// The zero value is the healthy mix.
type ThemeChoice struct {
	themes   []Theme
	explicit bool
}

// HealthyMix returns the choice that places no theme restriction
func HealthyMix() ThemeChoice {
	return ThemeChoice{}
}

// ThemesOf returns an explicit theme choice
func ThemesOf(themes ...Theme) ThemeChoice {
	if themes == nil {
		themes = []Theme{}
	}
	return ThemeChoice{themes: themes, explicit: true}
}

// IsHealthyMix reports whether no explicit theme list was given
func (c ThemeChoice) IsHealthyMix() bool {
	return !c.explicit
}

// Themes returns the explicit theme list, nil for the healthy mix
func (c ThemeChoice) Themes() []Theme {
	if !c.explicit {
		return nil
	}
	return c.themes
}

// Matches reports whether a puzzle tagged with themes satisfies the choice
func (c ThemeChoice) Matches(themes []Theme) bool {
	if !c.explicit {
		return true
	}
	for _, want := range c.themes {
		for _, have := range themes {
			if want == have {
				return true
			}
		}
	}
	return false
}

func (c ThemeChoice) String() string {
	if !c.explicit {
		return HealthyMixValue
	}
	parts := make([]string, len(c.themes))
	for i, t := range c.themes {
		parts[i] = string(t)
	}
	return "themes(" + strings.Join(parts, ",") + ")"
}

// MarshalJSON encodes the healthy mix as "healthyMix" and explicit themes as an array
func (c ThemeChoice) MarshalJSON() ([]byte, error) {
	if !c.explicit {
		return json.Marshal(HealthyMixValue)
	}
	return json.Marshal(c.themes)
}

// UnmarshalJSON accepts "healthyMix", null, or an array of theme names
func (c *ThemeChoice) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = HealthyMix()
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != HealthyMixValue {
			return fmt.Errorf("invalid theme choice %q", s)
		}
		*c = HealthyMix()
		return nil
	}
	var themes []Theme
	if err := json.Unmarshal(data, &themes); err != nil {
		return fmt.Errorf("invalid theme choice: %w", err)
	}
	*c = ThemesOf(themes...)
	return nil
}
