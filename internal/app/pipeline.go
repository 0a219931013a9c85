package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"solhello/internal/prompt"
	"solhello/internal/sequencer"
	"solhello/internal/util/console"
)

// Stage names, usable with --enable and --disable.
const (
	StageEstablishConnection sequencer.StageName = "establish-connection"
	StageEstablishPayer      sequencer.StageName = "establish-payer"
	StageCheckProgram        sequencer.StageName = "check-program"
	StagePromptOperation     sequencer.StageName = "prompt-operation"
	StagePromptNumber        sequencer.StageName = "prompt-number"
	StageStoreNumber         sequencer.StageName = "store-number"
	StageChangeNumber        sequencer.StageName = "change-number"
	StageExecuteImpact       sequencer.StageName = "execute-impact"
	StageReportGreetings     sequencer.StageName = "report-greetings"
)

const (
	numberLabel    = "What is your number? "
	operationLabel = "What to do? 0 = add, 1 = sub "
)

// ErrUnknownStage is returned when a toggle names a stage the variant does
// not have.
var ErrUnknownStage = errors.New("unknown stage")

// Actions are the collaborator calls a pipeline sequences.
type Actions interface {
	EstablishConnection(ctx context.Context) error
	EstablishPayer(ctx context.Context) error
	CheckProgram(ctx context.Context) error
	StoreNumber(ctx context.Context, number float64) error
	ChangeNumber(ctx context.Context, operation, number float64) error
	ExecuteImpact(ctx context.Context) error
	ReportGreetings(ctx context.Context) error
}

// Toggles override the variant's default stage selection. Disable wins when
// a stage is named in both.
type Toggles struct {
	Enable  []sequencer.StageName
	Disable []sequencer.StageName
}

// BuildPipeline returns the ordered stages for variant. Prompt stages read
// from input and hand their value to the action stages that follow them.
func BuildPipeline(
	variant Variant,
	actions Actions,
	input prompt.NumberProvider,
	out *console.Console,
	toggles Toggles,
) ([]sequencer.Stage, error) {
	if err := variant.Validate(); err != nil {
		return nil, err
	}

	var operation, number float64
	// ask stores the answer in dst. A non-empty echo repeats it back.
	ask := func(label, echo string, dst *float64) func(context.Context) error {
		return func(ctx context.Context) error {
			n, err := input.Number(ctx, label)
			if err != nil {
				return err
			}
			*dst = n
			if echo != "" {
				out.Outf("%s %s\n", echo, FormatNumber(n))
			}
			return nil
		}
	}

	stages := []sequencer.Stage{
		{Name: StageEstablishConnection, Message: variant.Banner(), Run: actions.EstablishConnection},
		{Name: StageEstablishPayer, Run: actions.EstablishPayer},
		{Name: StageCheckProgram, Run: actions.CheckProgram},
	}

	switch variant {
	case Hello:
		stages = append(stages,
			sequencer.Stage{
				Name: StagePromptNumber,
				Run:  ask(numberLabel, "Hey, your number is ", &number),
			},
			sequencer.Stage{
				Name: StageStoreNumber,
				Run:  func(ctx context.Context) error { return actions.StoreNumber(ctx, number) },
			},
		)
	case Mech:
		stages = append(stages,
			sequencer.Stage{
				Name:     StagePromptOperation,
				Disabled: true,
				Run:      ask(operationLabel, "", &operation),
			},
			sequencer.Stage{
				Name:     StagePromptNumber,
				Disabled: true,
				Run:      ask(numberLabel, "", &number),
			},
			sequencer.Stage{
				Name:     StageChangeNumber,
				Disabled: true,
				Run: func(ctx context.Context) error {
					return actions.ChangeNumber(ctx, operation, number)
				},
			},
			sequencer.Stage{Name: StageExecuteImpact, Run: actions.ExecuteImpact},
		)
	}
	stages = append(stages, sequencer.Stage{
		Name:     StageReportGreetings,
		Disabled: true,
		Run:      actions.ReportGreetings,
	})

	if err := applyToggles(variant, stages, toggles.Enable, false); err != nil {
		return nil, err
	}
	if err := applyToggles(variant, stages, toggles.Disable, true); err != nil {
		return nil, err
	}
	return stages, nil
}

func applyToggles(variant Variant, stages []sequencer.Stage, names []sequencer.StageName, disabled bool) error {
	for _, name := range names {
		found := false
		for i := range stages {
			if stages[i].Name == name {
				stages[i].Disabled = disabled
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w %q for %s", ErrUnknownStage, string(name), string(variant))
		}
	}
	return nil
}

// FormatNumber renders n the way the operator typed-number echo shows it:
// integral values without a fraction, NaN and Infinity spelled out, and
// exponents outside [1e-6, 1e21) without zero padding.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	if a := math.Abs(n); a != 0 && (a >= 1e21 || a < 1e-6) {
		// Go pads the exponent to two digits: 1.5e-07 becomes 1.5e-7.
		s := strconv.FormatFloat(n, 'e', -1, 64)
		i := strings.IndexByte(s, 'e') + 2
		return s[:i] + strings.TrimLeft(s[i:], "0")
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
