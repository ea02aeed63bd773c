// SPDX-License-Identifier: MIT
package generator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/thatcatcamp/themecycle/internal/styles"
)

// ErrSchema is returned when a generated document lacks a required role.
var ErrSchema = errors.New("generated config is missing required properties")

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks that doc styles both the body and the button role.
// Presence is the only requirement; empty blocks pass.
func Validate(doc *styles.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrSchema)
	}
	if err := validatorInstance().Struct(doc.Styles); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("%w: missing %s", ErrSchema, strings.Join(missing, ", "))
		}
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Namer mints keys and fallback names for generated documents. The
// counter only grows for the life of the process.
type Namer struct {
	counter atomic.Int64
}

// Next returns the next ordinal, its store key and its fallback name.
func (n *Namer) Next() (int64, string, string) {
	ordinal := n.counter.Add(1)
	return ordinal, fmt.Sprintf("generated_%d.json", ordinal), fmt.Sprintf("AI Generated Theme %d", ordinal)
}
