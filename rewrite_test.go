package lsystem

import (
	"errors"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// grow replaces a sym node with the same symbol and an incremented payload.
func grow(tag Symbol) Production[*log] {
	return Production[*log]{
		Predecessor: tag,
		Successor: func(step int, ctx Context[*log]) ([]*Node[*log], error) {
			old := ctx.Node.Module.(sym)
			return []*Node[*log]{NewNode[*log](step, sym{tag, old.val + 1})}, nil
		},
	}
}

// replace rewrites tag into a single node with symbol to.
func replace(tag, to Symbol) Production[*log] {
	return Production[*log]{
		Predecessor: tag,
		Successor: func(step int, ctx Context[*log]) ([]*Node[*log], error) {
			return []*Node[*log]{NewNode[*log](step, sym{to, 0})}, nil
		},
	}
}

var _ = ginkgo.Describe("Rewrite", func() {
	ginkgo.Describe("default identity", func() {
		ginkgo.It("carries unmatched nodes forward unchanged", func() {
			d := nodes(sym{"A", 1}, sym{"B", 2})
			next, err := Rewrite(d, nil, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("A(1) B(2)"))
			Expect(next).NotTo(BeIdenticalTo(d))
		})

		ginkgo.It("applies identity when a condition fails even though the type matched", func() {
			p := replace("A", "Z")
			p.Condition = func(Context[*log]) bool { return false }
			next, err := Rewrite(nodes(sym{"A", 1}), []Production[*log]{p}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("A(1)"))
		})

		ginkgo.It("applies identity when the probability gate fails", func() {
			p := replace("A", "Z")
			p.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.5 }
			rng := &fixedRand{draws: []float64{0.9}}
			next, err := Rewrite(nodes(sym{"A", 1}), []Production[*log]{p}, 1, rng)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("A(1)"))
			Expect(rng.used).To(Equal(1))
		})
	})

	ginkgo.Describe("context matching", func() {
		ginkgo.It("requires a concrete left neighbor to exist", func() {
			p := replace("A", "Z")
			p.Left = "A"
			next, err := Rewrite(nodes(sym{"A", 1}, sym{"A", 2}), []Production[*log]{p}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			// First A has no left neighbor; second does.
			Expect(next.String()).To(Equal("A(1) Z(0)"))
		})

		ginkgo.It("requires a concrete right neighbor to exist", func() {
			p := replace("A", "Z")
			p.Right = "A"
			next, err := Rewrite(nodes(sym{"A", 1}, sym{"A", 2}), []Production[*log]{p}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("Z(0) A(2)"))
		})

		ginkgo.It("reads context from the pre-step generation only", func() {
			// A becomes B in the same step, but C still sees left=A.
			ab := replace("A", "B")
			c := replace("C", "D")
			c.Left = "A"
			next, err := Rewrite(nodes(sym{"A", 0}, sym{"C", 0}), []Production[*log]{ab, c}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(0) D(0)"))
		})

		ginkgo.It("never matches context across a branch boundary", func() {
			// B[X] C: the C production wants left=X, which only exists
			// inside B's branch.
			p := replace("C", "Z")
			p.Left = "X"
			d := nodes(sym{"B", 0}, sym{"C", 0})
			d.At(0).Branch = nodes(sym{"X", 0})
			next, err := Rewrite(d, []Production[*log]{p}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(0)[X(0)] C(0)"))
		})
	})

	ginkgo.Describe("first-match selection", func() {
		ginkgo.It("selects the earliest production whose gate succeeds", func() {
			first := replace("A", "X")
			first.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.4 }
			second := replace("A", "Y")
			second.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.6 }

			rng := &fixedRand{draws: []float64{0.9, 0.3}}
			next, err := Rewrite(nodes(sym{"A", 0}), []Production[*log]{first, second}, 1, rng)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("Y(0)"))
			Expect(rng.used).To(Equal(2))
		})

		ginkgo.It("never evaluates a later gate once an earlier one succeeds", func() {
			first := replace("A", "X")
			first.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.9 }
			laterCalled := false
			second := replace("A", "Y")
			second.Probability = func(draw float64, _ Context[*log]) bool {
				laterCalled = true
				return true
			}

			rng := &fixedRand{draws: []float64{0.1}}
			next, err := Rewrite(nodes(sym{"A", 0}), []Production[*log]{first, second}, 1, rng)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("X(0)"))
			Expect(rng.used).To(Equal(1))
			Expect(laterCalled).To(BeFalse())
		})

		ginkgo.It("consumes no draw when the predecessor type does not match", func() {
			p := replace("A", "X")
			p.Probability = func(draw float64, _ Context[*log]) bool { return true }
			rng := &fixedRand{draws: []float64{0.5}}
			_, err := Rewrite(nodes(sym{"B", 0}, sym{"B", 1}), []Production[*log]{p}, 1, rng)
			Expect(err).NotTo(HaveOccurred())
			Expect(rng.used).To(BeZero())
		})
	})

	ginkgo.Describe("branches", func() {
		ginkgo.It("rewrites branch contents with the same production set", func() {
			d := nodes(sym{"B", 0})
			d.At(0).Branch = nodes(sym{"A", 1})
			next, err := Rewrite(d, []Production[*log]{grow("A")}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(0)[A(2)]"))
		})

		ginkgo.It("hands the rewritten branch to a successor that reuses the old branch", func() {
			inherit := Production[*log]{
				Predecessor: "B",
				Successor: func(step int, ctx Context[*log]) ([]*Node[*log], error) {
					n := NewNode[*log](step, sym{"B", 9})
					n.Branch = ctx.Node.Branch
					return []*Node[*log]{n}, nil
				},
			}
			d := nodes(sym{"B", 0})
			d.At(0).Branch = nodes(sym{"A", 1})
			next, err := Rewrite(d, []Production[*log]{inherit, grow("A")}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(9)[A(2)]"))
		})

		ginkgo.It("discards the old branch when a successor attaches its own", func() {
			fresh := Production[*log]{
				Predecessor: "B",
				Successor: func(step int, ctx Context[*log]) ([]*Node[*log], error) {
					n := NewNode[*log](step, sym{"B", 9})
					n.Branch = NewDerivation(NewNode[*log](step, sym{"N", 0}))
					return []*Node[*log]{n}, nil
				},
			}
			d := nodes(sym{"B", 0})
			d.At(0).Branch = nodes(sym{"A", 1})
			next, err := Rewrite(d, []Production[*log]{fresh, grow("A")}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(9)[N(0)]"))
		})

		ginkgo.It("supports zero-successor deletion", func() {
			erase := Production[*log]{
				Predecessor: "A",
				Successor: func(int, Context[*log]) ([]*Node[*log], error) {
					return nil, nil
				},
			}
			next, err := Rewrite(nodes(sym{"A", 0}, sym{"B", 0}), []Production[*log]{erase}, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.String()).To(Equal("B(0)"))
		})
	})

	ginkgo.Describe("configuration errors", func() {
		ginkgo.It("rejects a production without a predecessor", func() {
			p := Production[*log]{
				Successor: func(int, Context[*log]) ([]*Node[*log], error) { return nil, nil },
			}
			_, err := Rewrite(nodes(sym{"A", 0}), []Production[*log]{p}, 1, nil)
			Expect(errors.Is(err, ErrNoPredecessor)).To(BeTrue())
		})

		ginkgo.It("rejects a production without a successor generator", func() {
			p := Production[*log]{Predecessor: "A"}
			_, err := Rewrite(nodes(sym{"A", 0}), []Production[*log]{p}, 1, nil)
			Expect(errors.Is(err, ErrNoSuccessor)).To(BeTrue())
		})

		ginkgo.It("rejects a module with an empty symbol", func() {
			_, err := Rewrite(nodes(sym{"", 0}), nil, 1, nil)
			Expect(errors.Is(err, ErrUntaggedModule)).To(BeTrue())
		})
	})

	ginkgo.Describe("atomicity", func() {
		ginkgo.It("leaves the system untouched when a successor fails", func() {
			boom := Production[*log]{
				Predecessor: "B",
				Successor: func(int, Context[*log]) ([]*Node[*log], error) {
					return nil, errors.New("generator fault")
				},
			}
			sys := New(nodes(sym{"A", 1}, sym{"B", 2}), []Production[*log]{grow("A"), boom}, nil)
			before := sys.Derivation()
			beforeText := before.String()

			err := sys.Step()
			Expect(err).To(HaveOccurred())

			var rerr *RewriteError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Symbol).To(Equal(Symbol("B")))

			Expect(sys.Generation()).To(BeZero())
			Expect(sys.Derivation()).To(BeIdenticalTo(before))
			Expect(sys.Derivation().String()).To(Equal(beforeText))
		})
	})

	ginkgo.Describe("context-sensitive round trip", func() {
		ginkgo.It("derives A(1) B(4)[A(2)] A(3) from A(1) B(2) A(3)", func() {
			// Both A productions fail their gates (draws 0.9>=0.4 and
			// 0.7>=0.6 for the first A, 0.5 and 0.8 for the second), so
			// both A nodes carry over. B sums its neighbors and spawns a
			// branch holding its old payload.
			a1 := replace("A", "X")
			a1.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.4 }
			a2 := replace("A", "Y")
			a2.Probability = func(draw float64, _ Context[*log]) bool { return draw < 0.6 }
			b := Production[*log]{
				Predecessor: "B",
				Left:        "A",
				Right:       "A",
				Successor: func(step int, ctx Context[*log]) ([]*Node[*log], error) {
					left := ctx.Prev.Module.(sym)
					right := ctx.Next.Module.(sym)
					old := ctx.Node.Module.(sym)
					n := NewNode[*log](step, sym{"B", left.val + right.val})
					n.Branch = NewDerivation(NewNode[*log](step, sym{"A", old.val}))
					return []*Node[*log]{n}, nil
				},
			}

			rng := &fixedRand{draws: []float64{0.9, 0.7, 0.5, 0.8}}
			sys := New(nodes(sym{"A", 1}, sym{"B", 2}, sym{"A", 3}), []Production[*log]{a1, a2, b}, rng)

			Expect(sys.Step()).To(Succeed())
			Expect(sys.Derivation().String()).To(Equal("A(1) B(4)[A(2)] A(3)"))
			Expect(rng.used).To(Equal(4))
		})
	})
})
