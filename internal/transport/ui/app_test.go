package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whhaicheng/AverageCalc/internal/app/usecase"
	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
	"github.com/whhaicheng/AverageCalc/internal/infra/source"
)

// TestApplication_BuildWindow tests window assembly and the initial request.
func TestApplication_BuildWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	reg := source.NewRegistry()
	reg.Register(source.NewLocalSource(sequence.KindEven))
	uc := usecase.NewSequenceUseCase(reg, nil)
	ctrl := usecase.NewRequestController(uc, usecase.ControllerOptions{Kind: sequence.KindEven, Count: 4})
	defer ctrl.Close()

	window, page := newApplication(a, ctrl).buildWindow()
	require.NotNil(t, window.Content())
	assert.Equal(t, "Average Calculator", window.Title())

	ctrl.Wait()
	assert.Equal(t, execution.StateSucceeded, ctrl.State().State)

	page.Refresh()
	assert.Equal(t, 5.0, ctrl.State().Result.Average)
	page.Close()
}
