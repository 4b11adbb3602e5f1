package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trajcost/internal/config"
	"github.com/san-kum/trajcost/internal/cost"
	"github.com/san-kum/trajcost/internal/interp"
	"github.com/san-kum/trajcost/internal/metrics"
	"github.com/san-kum/trajcost/internal/report"
	"github.com/san-kum/trajcost/internal/traj"
	"github.com/san-kum/trajcost/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	quadrature string
	t0         float64
	tf         float64
	samples    int
	saveReport bool
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trajcost",
		Short: "trajectory-tracking cost evaluation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trajcost", "data directory")

	evalCmd := &cobra.Command{
		Use:   "eval [scenario]",
		Short: "evaluate the cost functional for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	evalCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	evalCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	evalCmd.Flags().StringVar(&quadrature, "quadrature", "", "integration strategy (rk45, rk4, trapezoid)")
	evalCmd.Flags().Float64Var(&t0, "t0", 0.0, "window start")
	evalCmd.Flags().Float64Var(&tf, "tf", 10.0, "window end")
	evalCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "trajectory samples")
	evalCmd.Flags().BoolVar(&saveReport, "save", false, "save evaluation report")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "compare quadrature strategies on the same scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	compareCmd.Flags().Float64Var(&t0, "t0", 0.0, "window start")
	compareCmd.Flags().Float64Var(&tf, "tf", 10.0, "window end")
	compareCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "trajectory samples")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch the cost across a growing horizon",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&tf, "tf", 10.0, "final horizon end")
	liveCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "trajectory samples")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved evaluation reports",
		RunE:  listReports,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(evalCmd, compareCmd, liveCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scenario bundles the actual trajectory, the reference, and the
// running-cost rate of a built-in demo.
type scenario struct {
	name    string
	dim     int
	wrap    []int
	weights []float64
	actual  func(t float64) traj.State
	desired func(t float64) traj.State
}

func getScenario(name string) (*scenario, error) {
	switch name {
	case "pendulum":
		return &scenario{
			name:    "pendulum",
			dim:     2,
			wrap:    []int{0},
			weights: []float64{10, 1},
			actual: func(t float64) traj.State {
				// damped swing toward the downward equilibrium
				theta := 2.5 * math.Exp(-0.3*t) * math.Cos(2*t)
				omega := 2.5 * math.Exp(-0.3*t) * (-0.3*math.Cos(2*t) - 2*math.Sin(2*t))
				return traj.State{theta, omega}
			},
			desired: func(t float64) traj.State {
				return traj.State{0, 0}
			},
		}, nil
	case "cartpole":
		return &scenario{
			name:    "cartpole",
			dim:     4,
			wrap:    []int{2},
			weights: []float64{1, 1, 25, 1},
			actual: func(t float64) traj.State {
				decay := math.Exp(-0.2 * t)
				pos := 0.8 * decay * math.Sin(1.5*t)
				vel := 0.8 * decay * (1.5*math.Cos(1.5*t) - 0.2*math.Sin(1.5*t))
				theta := 0.4 * decay * math.Cos(3*t)
				omega := 0.4 * decay * (-3*math.Sin(3*t) - 0.2*math.Cos(3*t))
				return traj.State{pos, vel, theta, omega}
			},
			desired: func(t float64) traj.State {
				return traj.State{0, 0, 0, 0}
			},
		}, nil
	case "circle":
		return &scenario{
			name:    "circle",
			dim:     2,
			weights: []float64{1, 1},
			actual: func(t float64) traj.State {
				r := 1 + 0.2*math.Exp(-0.5*t)
				return traj.State{r * math.Cos(t), r * math.Sin(t)}
			},
			desired: func(t float64) traj.State {
				return traj.State{math.Cos(t), math.Sin(t)}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s (available: pendulum, cartpole, circle)", name)
	}
}

// rate is the squared tracking error against the scenario reference.
func (s *scenario) rate() cost.RateFunc {
	return func(x traj.State, t float64) float64 {
		d := x.Sub(s.desired(t))
		sum := 0.0
		for _, v := range d {
			sum += v * v
		}
		return sum
	}
}

func (s *scenario) desiredTraj() traj.DesiredTrajectory {
	return traj.DesiredFunc(func(t float64, out traj.State) error {
		copy(out, s.desired(t))
		return nil
	})
}

func (s *scenario) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Weights = s.weights
	cfg.WrapIndices = s.wrap
	cfg.Scenario.Name = s.name
	if cmd.Flags().Changed("quadrature") {
		cfg.Quadrature = quadrature
	}
	if cmd.Flags().Changed("t0") {
		cfg.Scenario.T0 = t0
	}
	if cmd.Flags().Changed("tf") {
		cfg.Scenario.TF = tf
	}
	if cmd.Flags().Changed("samples") {
		cfg.Scenario.Samples = samples
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(s *scenario, cfg *config.Config) (*cost.Engine, *interp.Linear, error) {
	itp, err := interp.FromFunc(s.actual, cfg.Scenario.T0, cfg.Scenario.TF, cfg.Scenario.Samples)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, nil, err
	}
	integrand := cost.NewRunningCost(itp, s.dim, s.rate())
	engine, err := cost.New(itp, s.desiredTraj(), integrand, opts)
	if err != nil {
		return nil, nil, err
	}
	return engine, itp, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	scen, err := getScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := scen.config(cmd)
	if err != nil {
		return err
	}

	engine, itp, err := buildEngine(scen, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := engine.Update(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	term, err := engine.TerminalCost()
	if err != nil {
		return err
	}
	grad, err := engine.TerminalGradient()
	if err != nil {
		return err
	}

	// sample the rate along the window for the chart and the metric
	rate := scen.rate()
	te := metrics.NewTrackingError()
	n := cfg.Scenario.Samples
	times := make([]float64, n)
	rates := make([]float64, n)
	x := make(traj.State, scen.dim)
	for i := 0; i < n; i++ {
		t := cfg.Scenario.T0 + float64(i)*(cfg.Scenario.TF-cfg.Scenario.T0)/float64(n-1)
		times[i] = t
		if err := itp.Evaluate(t, x); err != nil {
			return err
		}
		rates[i] = rate(x, t)
		te.Observe(x, scen.desired(t), t)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "scenario\t%s\n", scen.name)
	fmt.Fprintf(w, "quadrature\t%s\n", cfg.Quadrature)
	fmt.Fprintf(w, "window\t[%.3f, %.3f]\n", cfg.Scenario.T0, cfg.Scenario.TF)
	fmt.Fprintf(w, "terminal cost\t%.6f\n", term)
	fmt.Fprintf(w, "running cost\t%.6f\n", engine.Cost()-term)
	fmt.Fprintf(w, "total J1\t%.6f\n", engine.Cost())
	fmt.Fprintf(w, "steps\t%d\n", engine.Steps())
	fmt.Fprintf(w, "%s\t%.6f\n", te.Name(), te.Value())
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	w.Flush()

	fmt.Printf("\nterminal gradient: %v\n\n", grad)

	graph := asciigraph.Plot(rates,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("running-cost rate l(x(t))"))
	fmt.Println(graph)

	if saveReport {
		wr := report.New(dataDir)
		if err := wr.Init(); err != nil {
			return err
		}
		winT0, winTF := engine.Window()
		runID, err := wr.Save(report.Report{
			Scenario:      scen.name,
			Quadrature:    cfg.Quadrature,
			T0:            winT0,
			TF:            winTF,
			TerminalCost:  term,
			TotalCost:     engine.Cost(),
			Steps:         engine.Steps(),
			TrackingError: te.Value(),
		}, times, rates)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved report: %s\n", runID)
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	scen, err := getScenario(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "quadrature\tJ1\tsteps\telapsed")

	for _, name := range []string{"rk45", "rk4", "trapezoid"} {
		cfg, err := scen.config(cmd)
		if err != nil {
			return err
		}
		cfg.Quadrature = name

		engine, _, err := buildEngine(scen, cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		if err := engine.Update(); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.8f\t%d\t%v\n", name, engine.Cost(), engine.Steps(), time.Since(start))
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	scen, err := getScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := scen.config(cmd)
	if err != nil {
		return err
	}

	// the trajectory grows one sample per cycle; the engine re-reads the
	// window on every Update, as an outer control loop would drive it
	shared := &sharedInterp{}
	integrand := cost.NewRunningCost(shared, scen.dim, scen.rate())
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine, err := cost.New(shared, scen.desiredTraj(), integrand, opts)
	if err != nil {
		return err
	}

	total := cfg.Scenario.Samples
	start := cfg.Scenario.T0
	span := cfg.Scenario.TF - start
	cycle := 0

	source := func() (viz.Sample, bool) {
		if cycle >= total {
			return viz.Sample{}, false
		}
		cycle++
		end := start + span*float64(cycle)/float64(total)
		itp, err := interp.FromFunc(scen.actual, start, end, cycle+1)
		if err != nil {
			return viz.Sample{T: end, Err: err}, true
		}
		shared.set(itp)
		engine.Invalidate()
		updateErr := engine.Update()
		term, _ := engine.TerminalCost()
		return viz.Sample{
			T:        end,
			Cost:     engine.Cost(),
			Terminal: term,
			Steps:    engine.Steps(),
			Err:      updateErr,
		}, true
	}

	return viz.Run(scen.name, frameRate, source)
}

// sharedInterp is the externally-mutated trajectory the engine borrows:
// the live driver swaps in a longer trajectory each cycle and then asks
// the engine to refresh.
type sharedInterp struct {
	cur *interp.Linear
}

func (s *sharedInterp) set(l *interp.Linear) { s.cur = l }
func (s *sharedInterp) Begin() float64       { return s.cur.Begin() }
func (s *sharedInterp) End() float64         { return s.cur.End() }
func (s *sharedInterp) Evaluate(t float64, out traj.State) error {
	return s.cur.Evaluate(t, out)
}

func listReports(cmd *cobra.Command, args []string) error {
	wr := report.New(dataDir)
	reports, err := wr.List()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("no saved reports")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tscenario\tquadrature\tJ1\tsteps")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6f\t%d\n", r.ID, r.Scenario, r.Quadrature, r.TotalCost, r.Steps)
	}
	return w.Flush()
}
