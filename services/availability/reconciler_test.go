package availability

import (
	"reflect"
	"testing"

	"slotwise/models"
)

func TestReconcileDay(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   []models.AvailableInterval
	}{
		{
			name: "no blocks",
			want: []models.AvailableInterval{{Start: 540, End: 1020}},
		},
		{
			name:   "one hour in the middle",
			blocks: []Block{{Start: 600, End: 660}},
			want:   []models.AvailableInterval{{Start: 540, End: 600}, {Start: 660, End: 1020}},
		},
		{
			name:   "overlapping blocks merge",
			blocks: []Block{{Start: 700, End: 800}, {Start: 600, End: 720}},
			want:   []models.AvailableInterval{{Start: 540, End: 600}, {Start: 800, End: 1020}},
		},
		{
			name:   "zero-width block splits the window",
			blocks: []Block{{Start: 600, End: 600}},
			want:   []models.AvailableInterval{{Start: 540, End: 600}, {Start: 600, End: 1020}},
		},
		{
			name:   "block at the window start",
			blocks: []Block{{Start: 540, End: 600}},
			want:   []models.AvailableInterval{{Start: 600, End: 1020}},
		},
		{
			name:   "blocks straddling both edges",
			blocks: []Block{{Start: 480, End: 570}, {Start: 1000, End: 1100}},
			want:   []models.AvailableInterval{{Start: 570, End: 1000}},
		},
		{
			name:   "block after closing is not clamped",
			blocks: []Block{{Start: 1100, End: 1200}},
			want:   []models.AvailableInterval{{Start: 540, End: 1100}},
		},
		{
			name:   "whole day taken",
			blocks: []Block{{Start: 500, End: 1100}},
			want:   []models.AvailableInterval{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileDay(540, 1020, tt.blocks)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// Free gaps and blocks that start inside the window, clipped to it, must tile
// it exactly.
func TestReconcileDayCoversWindow(t *testing.T) {
	const open, closing = 480, 1080
	blockSets := [][]Block{
		{{600, 660}, {630, 700}, {900, 900}},
		{{480, 481}, {1079, 1200}},
		{{700, 720}, {720, 740}, {740, 760}},
		{{300, 400}, {800, 850}, {1000, 1300}},
	}
	for _, blocks := range blockSets {
		covered := make([]int, closing-open)
		for _, gap := range ReconcileDay(open, closing, blocks) {
			if gap.Start >= gap.End || gap.Start < open || gap.End > closing {
				t.Fatalf("gap %v is empty or leaves the window", gap)
			}
			for m := gap.Start; m < gap.End; m++ {
				covered[m-open]++
			}
		}
		for _, b := range blocks {
			for m := max(b.Start, open); m < min(b.End, closing); m++ {
				if covered[m-open] > 0 {
					t.Fatalf("minute %d is both free and blocked in %v", m, blocks)
				}
				covered[m-open] = -1
			}
		}
		for i, c := range covered {
			if c == 0 {
				t.Fatalf("minute %d is neither free nor blocked in %v", open+i, blocks)
			}
			if c > 1 {
				t.Fatalf("minute %d appears in two gaps", open+i)
			}
		}
	}
}

func TestBlockFor(t *testing.T) {
	tests := []struct {
		res  models.Reservation
		want Block
		ok   bool
	}{
		{res: models.Reservation{StartTime: "10:00", EndTime: "11:30"}, want: Block{600, 690}, ok: true},
		{res: models.Reservation{StartTime: "10:00"}, want: Block{600, 600}, ok: true},
		{res: models.Reservation{StartTime: "10:00", EndTime: "09:00"}, want: Block{600, 600}, ok: true},
		{res: models.Reservation{StartTime: "bad"}, ok: false},
	}
	for _, tt := range tests {
		got, ok := blockFor(tt.res)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("blockFor(%s-%s) = %v, %v; want %v, %v", tt.res.StartTime, tt.res.EndTime, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOccupies(t *testing.T) {
	tests := []struct {
		res  models.Reservation
		want bool
	}{
		{res: models.Reservation{Status: models.StatusPending}, want: true},
		{res: models.Reservation{Status: models.StatusConfirmed}, want: true},
		{res: models.Reservation{Status: models.StatusRejected}, want: true},
		{res: models.Reservation{Status: models.StatusCompleted, JobInProgress: true}, want: false},
	}
	for _, tt := range tests {
		if got := occupies(tt.res); got != tt.want {
			t.Errorf("occupies(%s) = %v, want %v", tt.res.Status, got, tt.want)
		}
	}
}
