// Package featmatrix runs a test command once per combination of optional
// build features.
//
// A [Matrix] is built from ordered [FeatureGroup] values. Every group gets an
// extra empty variant meaning "not enabled", and the matrix enumerates the
// cartesian product of the groups in odometer order: the last group changes
// fastest. Each [Combination] is joined with single spaces and passed as the
// last argument of a fixed [Command].
//
// # Running
//
// A [Runner] invokes the command for every combination, one at a time, and
// stops at the first failure:
//
//	cfg := featmatrix.DefaultConfig()
//	cmd, err := cfg.ParseCommand()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := &featmatrix.Runner{Command: cmd}
//	if err := r.Run(ctx, cfg.Matrix()); err != nil {
//	    var ce *featmatrix.CombinationError
//	    if errors.As(err, &ce) {
//	        os.Exit(1)
//	    }
//	    log.Fatal(err)
//	}
//
// Before each invocation the runner writes
//
//	Starting tests with features: <joined>
//
// and on the first failure
//
//	<joined> failed. Exiting with code 1.
//
// # Enumerating
//
// [Matrix.Iter] returns a restartable [Iterator] that never builds the full
// list. [Matrix.All] exposes the same sequence as a range-over-func iterator:
//
//	for i, c := range m.All() {
//	    fmt.Printf("%d: %q\n", i, c)
//	}
//
// Joined strings are not sanitized. A combination where some groups are
// disabled may contain adjacent, leading, or trailing spaces.
package featmatrix
