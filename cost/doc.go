// Package cost prices token counts and tracks spend against thresholds.
//
// Prices are expressed per 1000 tokens:
//
//	c := cost.Compute(5, 0.0015) // 0.0000075
//
// # Thresholds
//
//	th := cost.DefaultThresholds()   // warning 0.01, critical 0.10, max daily 1.00
//	th.Classify(0.05)                // LevelWarning
//
// # Tracking
//
// A Tracker sums usage over one session, e.g. a batch of files:
//
//	tr := cost.NewTracker(th)
//	tr.Record("gpt-4", cost.Usage{InputTokens: 1200, Cost: 0.036})
//	tr.Level()      // LevelWarning
//	tr.Remaining()  // 0.964
package cost
