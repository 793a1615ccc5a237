package dispatch

import (
	"testing"
	"time"
)

var (
	t0     = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	onTime = OnTime(time.Date(1970, 1, 1, 10, 0, 0, 0, time.UTC))
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  Kind
	}{
		{name: "item wins", props: OnItem(7, t0), want: KindEdit},
		{name: "bare time", props: onTime, want: KindCreate},
		{name: "nothing", props: Props{}, want: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.props)
			if got.Kind != tt.want {
				t.Fatalf("kind = %s, want %s", got.Kind, tt.want)
			}
			if got.Kind == KindEdit && got.ItemID != 7 {
				t.Errorf("item id = %d, want 7", got.ItemID)
			}
			if got.Kind == KindCreate && !got.Time.Equal(onTime.Time) {
				t.Errorf("time = %s, want %s", got.Time, onTime.Time)
			}
		})
	}
}

func TestDoubleClickUsesSharedHandler(t *testing.T) {
	d := New(0)
	if got := d.DoubleClick(OnItem(3, t0)); got.Kind != KindEdit || got.ItemID != 3 {
		t.Fatalf("DoubleClick = %+v", got)
	}
	if d.Window() != DefaultTapWindow {
		t.Errorf("window = %s, want %s", d.Window(), DefaultTapWindow)
	}
}

func TestTwoTapsInsideWindowFireOnce(t *testing.T) {
	d := New(DefaultTapWindow)
	fired := 0

	first := d.Tap(t0, onTime)
	if first.Fired() {
		fired++
	}
	if !first.ArmReset {
		t.Fatal("first tap should arm a reset")
	}

	second := d.Tap(t0.Add(299*time.Millisecond), onTime)
	if second.Fired() {
		fired++
	}
	d.ResetTaps(first.Gen)

	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if second.Activation.Kind != KindCreate {
		t.Errorf("activation kind = %s, want create", second.Activation.Kind)
	}
	if d.Pending() != 0 {
		t.Errorf("pending = %d, want 0", d.Pending())
	}
}

func TestSecondTapPayloadIsUsed(t *testing.T) {
	d := New(DefaultTapWindow)
	d.Tap(t0, onTime)
	got := d.Tap(t0.Add(100*time.Millisecond), OnItem(9, t0))
	if got.Activation.Kind != KindEdit || got.Activation.ItemID != 9 {
		t.Fatalf("activation = %+v, want edit of item 9", got.Activation)
	}
}

func TestTapsSpacedApartNeverFire(t *testing.T) {
	gaps := []time.Duration{300 * time.Millisecond, 301 * time.Millisecond, time.Second}

	for _, gap := range gaps {
		t.Run(gap.String(), func(t *testing.T) {
			t.Run("reset delivered", func(t *testing.T) {
				d := New(DefaultTapWindow)
				first := d.Tap(t0, onTime)
				d.ResetTaps(first.Gen)
				if d.Pending() != 0 {
					t.Fatalf("pending after reset = %d, want 0", d.Pending())
				}
				if d.Tap(t0.Add(gap), onTime).Fired() {
					t.Fatal("tap after reset fired")
				}
			})

			t.Run("reset late", func(t *testing.T) {
				d := New(DefaultTapWindow)
				d.Tap(t0, onTime)
				if d.Tap(t0.Add(gap), onTime).Fired() {
					t.Fatal("late second tap fired")
				}
			})
		})
	}
}

func TestCounterResetsAfterWindowRegardlessOfOutcome(t *testing.T) {
	d := New(DefaultTapWindow)

	single := d.Tap(t0, onTime)
	d.ResetTaps(single.Gen)
	if d.Pending() != 0 {
		t.Fatalf("pending after single tap window = %d, want 0", d.Pending())
	}

	first := d.Tap(t0.Add(time.Second), onTime)
	d.Tap(t0.Add(time.Second+50*time.Millisecond), onTime)
	d.ResetTaps(first.Gen)
	if d.Pending() != 0 {
		t.Fatalf("pending after double tap window = %d, want 0", d.Pending())
	}
}

func TestRapidTapsPairExactly(t *testing.T) {
	d := New(DefaultTapWindow)
	var resets []uint64
	fired := 0

	for i := 0; i < 4; i++ {
		r := d.Tap(t0.Add(time.Duration(i)*100*time.Millisecond), onTime)
		if r.Fired() {
			fired++
		}
		if r.ArmReset {
			resets = append(resets, r.Gen)
		}
		// The reset armed by the first tap lands between taps three and four.
		if i == 2 {
			d.ResetTaps(resets[0])
		}
	}

	if fired != 2 {
		t.Fatalf("four rapid taps fired %d times, want 2", fired)
	}
}
