// Package verify checks the bit-level arithmetic against native and
// arbitrary-precision arithmetic on randomly drawn operands.
package verify

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bitint"
	"github.com/spacemeshos/bitint/bitarray"
	"github.com/spacemeshos/bitint/config"
)

const (
	RoundTrip       = "round-trip"
	DoubleNegation  = "double-negation"
	AdditiveInverse = "additive-inverse"
	Commutativity   = "commutativity"
	NativeAdd       = "native-add"
	NativeSub       = "native-sub"
	SubInvertsAdd   = "sub-inverts-add"
	NativeOrder     = "native-order"
)

// Properties lists every property Run checks.
var Properties = []string{
	RoundTrip, DoubleNegation, AdditiveInverse, Commutativity,
	NativeAdd, NativeSub, SubInvertsAdd, NativeOrder,
}

type Report struct {
	Width    uint
	Unsigned bool

	Pairs  uint64
	Checks uint64
	// Overflows counts operations that correctly reported overflow or underflow.
	Overflows uint64
}

// PropertyError reports the first property violation found.
type PropertyError struct {
	Property string
	Width    uint
	A, B     string
	Detail   string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %q violated at width %d for (%s, %s): %s", e.Property, e.Width, e.A, e.B, e.Detail)
}

// Run draws cfg.Iterations operand pairs, split across cfg.Workers workers,
// and checks every enabled property on each pair.
func Run(ctx context.Context, cfg *config.Config, options ...OptionFunc) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := applyOpts(options...)
	logger := opts.logger.With(zap.Uint("width", cfg.Width), zap.String("kind", cfg.Kind()))

	workers := workerCount(cfg.Workers, cfg.Iterations)
	results := make([]Report, workers)

	eg, egCtx := errgroup.WithContext(ctx)
	for i := uint(0); i < workers; i++ {
		w := &worker{
			id:     int(i),
			width:  cfg.Width,
			rnd:    rand.New(rand.NewSource(cfg.Seed + int64(i))),
			opts:   opts,
			report: &results[i],
			limit:  new(big.Int).Lsh(big.NewInt(1), cfg.Width-1),
		}
		n := share(cfg.Iterations, workers, i)
		eg.Go(func() error {
			logger.Debug("worker started", zap.Int("worker", w.id), zap.Uint("pairs", n))
			if cfg.Unsigned {
				return w.run(egCtx, n, w.unsignedPair)
			}
			return w.run(egCtx, n, w.signedPair)
		})
	}

	if err := eg.Wait(); err != nil {
		var pe *PropertyError
		if errors.As(err, &pe) {
			logger.Error("property violated", zap.String("property", pe.Property), zap.String("a", pe.A), zap.String("b", pe.B))
		}
		return nil, err
	}

	report := &Report{Width: cfg.Width, Unsigned: cfg.Unsigned}
	for _, r := range results {
		report.Pairs += r.Pairs
		report.Checks += r.Checks
		report.Overflows += r.Overflows
	}
	logger.Info("verification completed",
		zap.Uint64("pairs", report.Pairs),
		zap.Uint64("checks", report.Checks),
		zap.Uint64("overflows", report.Overflows),
	)
	return report, nil
}

// workerCount caps the pool at one worker per iteration, keeping at least one.
func workerCount(workers, iterations uint) uint {
	if workers > iterations {
		workers = iterations
	}
	if workers == 0 {
		return 1
	}
	return workers
}

// share returns the number of iterations worker idx runs.
func share(total, workers, idx uint) uint {
	n := total / workers
	if idx < total%workers {
		n++
	}
	return n
}

type worker struct {
	id     int
	width  uint
	rnd    *rand.Rand
	opts   *option
	report *Report
	// limit is 2^(width-1).
	limit *big.Int
}

func (w *worker) run(ctx context.Context, n uint, pair func() error) error {
	for i := uint(0); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := pair(); err != nil {
			return err
		}
		w.report.Pairs++
	}
	return nil
}

// check counts an enabled property and runs it.
func (w *worker) check(property string, fn func() string) string {
	if !w.opts.enabled(property) {
		return ""
	}
	w.report.Checks++
	return fn()
}

// magnitude draws a bit length in [1, max], then a value below 2^length, so small
// and large operands are equally likely.
func (w *worker) magnitude(max uint) uint64 {
	k := uint(w.rnd.Intn(int(max))) + 1
	return w.rnd.Uint64() >> (64 - k)
}

func (w *worker) signedValue() int64 {
	n := w.width - 1
	if n > 63 {
		n = 63
	}
	v := int64(w.magnitude(n))
	if w.rnd.Intn(2) == 0 {
		return -v
	}
	return v
}

func (w *worker) unsignedValue() uint64 {
	n := w.width - 1
	if n > 64 {
		n = 64
	}
	return w.magnitude(n)
}

func (w *worker) signedPair() error {
	a, b := w.signedValue(), w.signedValue()
	x, err := bitint.NewInt(a, w.width)
	if err != nil {
		return err
	}
	y, err := bitint.NewInt(b, w.width)
	if err != nil {
		return err
	}

	sum, addErr := x.Add(y)
	diff, subErr := x.Sub(y)
	ba, bb := big.NewInt(a), big.NewInt(b)

	checks := []struct {
		property string
		fn       func() string
	}{
		{RoundTrip, func() string {
			if v, err := x.Int64(); err != nil || v != a {
				return fmt.Sprintf("decoded %d, err %v", v, err)
			}
			return ""
		}},
		{DoubleNegation, func() string {
			if nn := x.Neg().Neg(); !nn.Equal(x) {
				return fmt.Sprintf("neg(neg(x)) = %s", nn)
			}
			return ""
		}},
		{AdditiveInverse, func() string {
			if z, err := x.Add(x.Neg()); err != nil || !z.IsZero() {
				return fmt.Sprintf("x + neg(x) = %s, err %v", z, err)
			}
			return ""
		}},
		{Commutativity, func() string {
			rev, revErr := y.Add(x)
			if (addErr == nil) != (revErr == nil) || (addErr == nil && !sum.Equal(rev)) {
				return fmt.Sprintf("x+y = %s (%v), y+x = %s (%v)", sum, addErr, rev, revErr)
			}
			return ""
		}},
		{NativeAdd, func() string {
			return w.agreeSigned(sum, addErr, new(big.Int).Add(ba, bb))
		}},
		{NativeSub, func() string {
			return w.agreeSigned(diff, subErr, new(big.Int).Sub(ba, bb))
		}},
		{SubInvertsAdd, func() string {
			if addErr != nil {
				return ""
			}
			if back, err := sum.Sub(y); err != nil || !back.Equal(x) {
				return fmt.Sprintf("(x+y)-y = %s, err %v", back, err)
			}
			return ""
		}},
		{NativeOrder, func() string {
			if got, want := x.Cmp(y), ba.Cmp(bb); got != want {
				return fmt.Sprintf("cmp = %d, want %d", got, want)
			}
			return ""
		}},
	}

	for _, c := range checks {
		if detail := w.check(c.property, c.fn); detail != "" {
			return &PropertyError{Property: c.property, Width: w.width, A: fmt.Sprint(a), B: fmt.Sprint(b), Detail: detail}
		}
	}
	return nil
}

func (w *worker) unsignedPair() error {
	a, b := w.unsignedValue(), w.unsignedValue()
	x, err := bitint.NewUint(a, w.width)
	if err != nil {
		return err
	}
	y, err := bitint.NewUint(b, w.width)
	if err != nil {
		return err
	}

	sum, addErr := x.Add(y)
	diff, subErr := x.Sub(y)
	ba, bb := new(big.Int).SetUint64(a), new(big.Int).SetUint64(b)

	checks := []struct {
		property string
		fn       func() string
	}{
		{RoundTrip, func() string {
			if v, err := x.Uint64(); err != nil || v != a {
				return fmt.Sprintf("decoded %d, err %v", v, err)
			}
			return ""
		}},
		{DoubleNegation, func() string {
			if nn := x.TwosComplement().TwosComplement(); !nn.Equal(x) {
				return fmt.Sprintf("neg(neg(x)) = %s", nn)
			}
			return ""
		}},
		{Commutativity, func() string {
			rev, revErr := y.Add(x)
			if (addErr == nil) != (revErr == nil) || (addErr == nil && !sum.Equal(rev)) {
				return fmt.Sprintf("x+y = %s (%v), y+x = %s (%v)", sum, addErr, rev, revErr)
			}
			return ""
		}},
		{NativeAdd, func() string {
			return w.agreeUnsigned(sum, addErr, new(big.Int).Add(ba, bb), bitint.ErrUnsignedOverflow)
		}},
		{NativeSub, func() string {
			return w.agreeUnsigned(diff, subErr, new(big.Int).Sub(ba, bb), bitint.ErrUnsignedUnderflow)
		}},
		{SubInvertsAdd, func() string {
			if addErr != nil {
				return ""
			}
			if back, err := sum.Sub(y); err != nil || !back.Equal(x) {
				return fmt.Sprintf("(x+y)-y = %s, err %v", back, err)
			}
			return ""
		}},
		{NativeOrder, func() string {
			if got, want := x.Cmp(y), ba.Cmp(bb); got != want {
				return fmt.Sprintf("cmp = %d, want %d", got, want)
			}
			return ""
		}},
	}

	for _, c := range checks {
		if detail := w.check(c.property, c.fn); detail != "" {
			return &PropertyError{Property: c.property, Width: w.width, A: fmt.Sprint(a), B: fmt.Sprint(b), Detail: detail}
		}
	}
	return nil
}

// agreeSigned compares a signed result against the exact value want.
func (w *worker) agreeSigned(got bitint.Int, err error, want *big.Int) string {
	lower := new(big.Int).Neg(w.limit)
	if want.Cmp(lower) < 0 || want.Cmp(w.limit) >= 0 {
		if errors.Is(err, bitint.ErrSignedOverflow) {
			w.report.Overflows++
			return ""
		}
		return fmt.Sprintf("want overflow for %s, got %s, err %v", want, got, err)
	}
	if err != nil {
		return fmt.Sprintf("want %s, got err %v", want, err)
	}
	if v := toBig(got.Bits(), true); v.Cmp(want) != 0 {
		return fmt.Sprintf("want %s, got %s", want, v)
	}
	return w.agreeNative(want, want.IsInt64(), func() (string, error) {
		v, err := got.Int64()
		return fmt.Sprint(v), err
	})
}

func (w *worker) agreeUnsigned(got bitint.Uint, err error, want *big.Int, rangeErr error) string {
	if want.Sign() < 0 || want.Cmp(w.limit) >= 0 {
		if errors.Is(err, rangeErr) {
			w.report.Overflows++
			return ""
		}
		return fmt.Sprintf("want %v for %s, got %s, err %v", rangeErr, want, got, err)
	}
	if err != nil {
		return fmt.Sprintf("want %s, got err %v", want, err)
	}
	if v := toBig(got.Bits(), false); v.Cmp(want) != 0 {
		return fmt.Sprintf("want %s, got %s", want, v)
	}
	return w.agreeNative(want, want.IsUint64(), func() (string, error) {
		v, err := got.Uint64()
		return fmt.Sprint(v), err
	})
}

// agreeNative checks native extraction: exact when want fits 64 bits, ErrValueOutOfRange otherwise.
func (w *worker) agreeNative(want *big.Int, fitsNative bool, extract func() (string, error)) string {
	v, err := extract()
	switch {
	case fitsNative && err != nil:
		return fmt.Sprintf("want native %s, got err %v", want, err)
	case fitsNative && v != want.String():
		return fmt.Sprintf("want native %s, got %s", want, v)
	case !fitsNative && !errors.Is(err, bitint.ErrValueOutOfRange):
		return fmt.Sprintf("want out of range for %s, got %s, err %v", want, v, err)
	}
	return ""
}

// toBig decodes a bit array with math/big as an independent reference.
func toBig(a *bitarray.Array, signed bool) *big.Int {
	v := new(big.Int)
	for i := a.Len(); i > 0; i-- {
		v.Lsh(v, 1)
		if a.Test(i - 1) {
			v.SetBit(v, 0, 1)
		}
	}
	if signed && a.Len() > 0 && a.Test(a.Len()-1) {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), a.Len()))
	}
	return v
}
