package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/scanner"
	pkgconfig "github.com/goran-ethernal/ChainScanner/pkg/config"
	"github.com/goran-ethernal/ChainScanner/pkg/store"
	"github.com/stretchr/testify/require"
)

func testConfig() *pkgconfig.Config {
	return &pkgconfig.Config{Scanners: []pkgconfig.ScannerConfig{
		{Name: "transfers", Kind: "token_transfer", StartBlock: 10, EndBlock: 20},
		{Name: "sales", Kind: "sale"},
		{Name: "stats", Kind: "block_stats", EndBlock: 99},
	}}
}

func TestSelectScanners(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		only      string
		wantNames []string
		wantStart []uint64
		wantEnd   []uint64
		wantErr   string
	}{
		{
			name:      "no overrides keeps config",
			wantNames: []string{"transfers", "sales", "stats"},
			wantStart: []uint64{10, 0, 0},
			wantEnd:   []uint64{20, 0, 99},
		},
		{
			name:      "range applies to every scanner",
			start:     "100",
			end:       "0x1f4",
			wantNames: []string{"transfers", "sales", "stats"},
			wantStart: []uint64{100, 100, 100},
			wantEnd:   []uint64{500, 500, 500},
		},
		{
			name:      "only filters by name in config order",
			only:      "stats, transfers",
			wantNames: []string{"transfers", "stats"},
			wantStart: []uint64{10, 0},
			wantEnd:   []uint64{20, 99},
		},
		{
			name:    "unknown name",
			only:    "nope",
			wantErr: `unknown scanner "nope"`,
		},
		{
			name:    "invalid start",
			start:   "abc",
			wantErr: "invalid start-block",
		},
		{
			name:      "start after end is kept as an empty range",
			start:     "10",
			end:       "5",
			only:      "sales",
			wantNames: []string{"sales"},
			wantStart: []uint64{10},
			wantEnd:   []uint64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			got, err := selectScanners(cfg, tt.start, tt.end, tt.only)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.wantNames))

			for i, sc := range got {
				require.Equal(t, tt.wantNames[i], sc.Name)
				require.Equal(t, tt.wantStart[i], sc.StartBlock)
				require.Equal(t, tt.wantEnd[i], sc.EndBlock)
			}

			// the loaded configuration is left untouched
			require.Equal(t, testConfig(), cfg)
		})
	}
}

func TestSummarize(t *testing.T) {
	log := logger.NewNopLogger()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("boom")

	tests := []struct {
		name     string
		ctx      context.Context
		reports  []scanner.RunReport
		failures []error
		want     error
	}{
		{
			name:     "clean",
			ctx:      context.Background(),
			reports:  []scanner.RunReport{{Scanner: "a", WriteReport: store.WriteReport{Inserted: 3}}, {Scanner: "b"}},
			failures: []error{nil, nil},
		},
		{
			name:     "degraded",
			ctx:      context.Background(),
			reports:  []scanner.RunReport{{Scanner: "a"}, {Scanner: "b", WriteReport: store.WriteReport{OtherErrors: 1}}},
			failures: []error{nil, nil},
			want:     errDegraded,
		},
		{
			name:     "fatal wins over degraded",
			ctx:      context.Background(),
			reports:  []scanner.RunReport{{Scanner: "a", WriteReport: store.WriteReport{OtherErrors: 1}}, {Scanner: "b"}},
			failures: []error{nil, boom},
			want:     boom,
		},
		{
			name:     "interrupted",
			ctx:      cancelled,
			reports:  []scanner.RunReport{{Scanner: "a"}},
			failures: []error{context.Canceled},
			want:     errInterrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := summarize(tt.ctx, log, tt.reports, tt.failures)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExitCode(t *testing.T) {
	require.Equal(t, exitOK, exitCode(nil))
	require.Equal(t, exitDegraded, exitCode(errDegraded))
	require.Equal(t, exitFailure, exitCode(errInterrupted))
	require.Equal(t, exitFailure, exitCode(errors.New("config")))
}

func TestTopicCommand(t *testing.T) {
	var out bytes.Buffer
	topicCmd.SetOut(&out)
	t.Cleanup(func() { topicCmd.SetOut(nil) })

	require.NoError(t, topicCmd.RunE(topicCmd, []string{"Transfer(address indexed from, address indexed to, uint256 value)"}))
	require.Contains(t, out.String(), "Transfer(address,address,uint256)")
	require.Contains(t, out.String(), "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	listCmd.SetOut(&out)
	t.Cleanup(func() { listCmd.SetOut(nil) })

	listCmd.Run(listCmd, nil)
	for _, kind := range []string{"token_transfer", "axie_transfer", "sale", "transaction", "block_stats"} {
		require.Contains(t, out.String(), kind)
	}
	require.Contains(t, out.String(), "AXIE")
}
