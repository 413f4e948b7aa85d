package dashboard

import (
	"testing"
)

func newTestRegistry() *ComponentRegistry {
	registry := NewComponentRegistry()
	registry.Register(NewHeader())
	registry.Register(NewChainStatus(true))
	registry.Register(NewAccountStatus(true))
	registry.Register(NewValidatorInfo(true))
	registry.Register(NewValidatorsList(true))
	return registry
}

func TestNewLayout(t *testing.T) {
	registry := newTestRegistry()

	config := LayoutConfig{
		Rows: []LayoutRow{
			{Components: []string{"header"}, Weights: []int{100}, MinHeight: 3},
		},
	}

	layout := NewLayout(config, registry)
	if layout == nil {
		t.Fatal("NewLayout returned nil")
	}
	if layout.registry != registry {
		t.Error("Layout registry not set correctly")
	}
	if len(layout.config.Rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(layout.config.Rows))
	}
}

func TestLayoutCompute(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		height        int
		config        LayoutConfig
		wantCellCount int
		wantWarning   bool
	}{
		{
			name:   "single component",
			width:  100,
			height: 20,
			config: LayoutConfig{
				Rows: []LayoutRow{
					{Components: []string{"header"}, Weights: []int{100}, MinHeight: 3},
				},
			},
			wantCellCount: 1,
			wantWarning:   false,
		},
		{
			name:   "two rows multiple components",
			width:  100,
			height: 40,
			config: LayoutConfig{
				Rows: []LayoutRow{
					{Components: []string{"header"}, Weights: []int{100}, MinHeight: 3},
					{Components: []string{"chain_status", "account_status"}, Weights: []int{50, 50}, MinHeight: 7},
				},
			},
			wantCellCount: 3,
			wantWarning:   false,
		},
		{
			name:   "narrow width triggers warning",
			width:  10,
			height: 20,
			config: LayoutConfig{
				Rows: []LayoutRow{
					{Components: []string{"chain_status", "account_status", "validator_info"}, Weights: []int{33, 33, 34}, MinHeight: 8},
				},
			},
			wantCellCount: 0, // Components may be dropped
			wantWarning:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := NewLayout(tt.config, newTestRegistry())
			result := layout.Compute(tt.width, tt.height)

			if tt.wantWarning && result.Warning == "" {
				t.Error("Expected warning but got none")
			}
			if !tt.wantWarning && result.Warning != "" {
				t.Errorf("Unexpected warning: %s", result.Warning)
			}

			if len(result.Cells) < tt.wantCellCount && !tt.wantWarning {
				t.Errorf("Expected at least %d cells, got %d", tt.wantCellCount, len(result.Cells))
			}

			for _, cell := range result.Cells {
				if cell.W < 0 || cell.H < 0 {
					t.Errorf("Invalid cell dimensions: W=%d, H=%d", cell.W, cell.H)
				}
				if cell.X < 0 || cell.Y < 0 {
					t.Errorf("Invalid cell position: X=%d, Y=%d", cell.X, cell.Y)
				}
			}
		})
	}
}

func TestLayoutComputeVerticalSlack(t *testing.T) {
	registry := newTestRegistry()

	config := LayoutConfig{
		Rows: []LayoutRow{
			{Components: []string{"header"}, Weights: []int{100}, MinHeight: 3},
			{Components: []string{"validators_list"}, Weights: []int{100}, MinHeight: 8},
		},
	}

	layout := NewLayout(config, registry)
	result := layout.Compute(100, 30)

	if len(result.Cells) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(result.Cells))
	}

	// Header should stay at MinHeight, the list absorbs the slack
	headerCell := result.Cells[0]
	if headerCell.H != 3 {
		t.Errorf("Header height: expected 3, got %d", headerCell.H)
	}
	listCell := result.Cells[1]
	if listCell.H <= 8 {
		t.Errorf("List should absorb vertical slack, got height %d", listCell.H)
	}
}

func TestComputeRowWidths(t *testing.T) {
	layout := NewLayout(LayoutConfig{}, newTestRegistry())

	tests := []struct {
		name        string
		row         LayoutRow
		totalWidth  int
		wantWidths  int
		wantWarning bool
	}{
		{
			name: "sufficient width with weights",
			row: LayoutRow{
				Components: []string{"chain_status", "account_status"},
				Weights:    []int{50, 50},
				MinHeight:  7,
			},
			totalWidth:  100,
			wantWidths:  2,
			wantWarning: false,
		},
		{
			name: "insufficient width",
			row: LayoutRow{
				Components: []string{"chain_status", "account_status"},
				Weights:    []int{50, 50},
				MinHeight:  7,
			},
			totalWidth:  20, // Less than sum of MinWidths (30 + 30)
			wantWidths:  0,  // Components may be dropped
			wantWarning: true,
		},
		{
			name: "no weights specified",
			row: LayoutRow{
				Components: []string{"chain_status"},
				Weights:    []int{},
				MinHeight:  7,
			},
			totalWidth:  100,
			wantWidths:  1,
			wantWarning: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widths, keptIDs, warning := layout.computeRowWidths(tt.row, tt.totalWidth)

			if tt.wantWarning && warning == "" {
				t.Error("Expected warning but got none")
			}
			if !tt.wantWarning && warning != "" {
				t.Errorf("Unexpected warning: %s", warning)
			}
			if !tt.wantWarning {
				if len(widths) != tt.wantWidths {
					t.Errorf("Expected %d widths, got %d", tt.wantWidths, len(widths))
				}
				if len(keptIDs) != len(tt.row.Components) {
					t.Errorf("Expected all components kept, got %v", keptIDs)
				}
			}
		})
	}
}
