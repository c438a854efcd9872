package nsga

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"dockSched/internal/dock"
)

// ParentSelection задаёт способ выбора родителей для размножения.
type ParentSelection string

const (
	ParentRandom     ParentSelection = "random"
	ParentTournament ParentSelection = "tournament"
)

type Config struct {
	Mu            int     `validate:"gte=1"`
	Lambda        int     `validate:"gte=1"`
	Generations   int     `validate:"gte=0"`
	CrossoverRate float64 `validate:"gte=0,lte=1"`
	MutationRate  float64 `validate:"gte=0,lte=1"`

	ParentSelection ParentSelection `validate:"oneof=random tournament"`

	// Workers — число горутин для оценки особей; 0 и 1 означают оценку в текущей горутине.
	Workers int `validate:"gte=0"`
	// ArchiveLimit ограничивает размер Парето-архива; 0 — без ограничения.
	ArchiveLimit int `validate:"gte=0"`
	// TimeBudget проверяется только на границе поколений; 0 — без ограничения.
	TimeBudget time.Duration `validate:"gte=0"`
}

var validate = validator.New()

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		// Возвращаем только первую ошибку, так сообщение читается проще
		fe := verrs[0]
		return fmt.Errorf(
			"%w: параметр %s не удовлетворяет условию %s=%s (получено %v)",
			dock.ErrInvalidConfiguration, fe.Field(), fe.Tag(), fe.Param(), fe.Value(),
		)
	}
	return fmt.Errorf("%w: %v", dock.ErrInvalidConfiguration, err)
}

func DefaultConfig() Config {
	return Config{
		Mu:              100,
		Lambda:          100,
		Generations:     200,
		CrossoverRate:   0.7,
		MutationRate:    0.2,
		ParentSelection: ParentRandom,
	}
}
