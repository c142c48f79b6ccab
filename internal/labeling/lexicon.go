package labeling

// valences maps a normalized word to its polarity on a -4..4 scale,
// following the convention of compound-score lexicons. The list is curated
// for mobile-banking app reviews: general sentiment words plus the
// vocabulary that dominates app-store feedback (crashes, transfers, OTPs).
// Deliberately absent: bare acknowledgements like "ok"/"okay", which carry
// no polarity in this domain.
var valences = map[string]float64{
	// general positive
	"amazing":     3.2,
	"awesome":     3.1,
	"excellent":   3.2,
	"fantastic":   3.3,
	"great":       3.1,
	"outstanding": 3.2,
	"perfect":     3.4,
	"wonderful":   3.2,
	"best":        3.2,
	"love":        3.2,
	"loved":       2.9,
	"like":        1.5,
	"good":        1.9,
	"nice":        1.8,
	"happy":       2.1,
	"satisfied":   2.0,
	"thank":       1.7,
	"thanks":      1.7,
	"impressive":  2.3,
	"cool":        1.3,
	"better":      1.9,
	"improved":    1.8,
	"improvement": 1.4,
	"recommend":   1.8,
	"recommended": 1.8,

	// app-domain positive
	"fast":        1.4,
	"quick":       1.5,
	"smooth":      1.9,
	"easy":        1.9,
	"simple":      1.4,
	"convenient":  2.0,
	"reliable":    2.0,
	"stable":      1.6,
	"secure":      1.6,
	"safe":        1.6,
	"helpful":     1.9,
	"friendly":    1.9,
	"intuitive":   1.7,
	"responsive":  1.7,
	"works":       1.2,
	"working":     1.1,
	"seamless":    2.2,
	"efficient":   1.9,
	"modern":      1.3,
	"clean":       1.4,
	"free":        1.0,

	// general negative
	"awful":        -3.1,
	"bad":          -2.5,
	"horrible":     -3.0,
	"terrible":     -3.1,
	"worst":        -3.4,
	"worthless":    -2.9,
	"useless":      -2.6,
	"hate":         -2.7,
	"hated":        -2.6,
	"disappointed": -2.3,
	"disappointing": -2.3,
	"frustrating":  -2.4,
	"frustrated":   -2.3,
	"annoying":     -2.2,
	"angry":        -2.3,
	"poor":         -2.1,
	"pathetic":     -2.6,
	"garbage":      -2.8,
	"trash":        -2.8,
	"rubbish":      -2.6,
	"shame":        -1.9,
	"sad":          -1.7,
	"sucks":        -2.3,
	"boring":       -1.3,
	"wrong":        -1.6,
	"fake":         -2.0,
	"scam":         -3.0,

	// app-domain negative
	"crash":      -2.2,
	"crashes":    -2.2,
	"crashing":   -2.2,
	"crashed":    -2.2,
	"freeze":     -1.9,
	"freezes":    -1.9,
	"freezing":   -1.9,
	"frozen":     -1.8,
	"bug":        -1.8,
	"buggy":      -2.1,
	"bugs":       -1.9,
	"glitch":     -1.8,
	"glitchy":    -2.0,
	"broken":     -2.2,
	"slow":       -1.6,
	"lag":        -1.6,
	"laggy":      -1.8,
	"lags":       -1.6,
	"stuck":      -1.7,
	"hang":       -1.6,
	"hangs":      -1.6,
	"error":      -1.6,
	"errors":     -1.7,
	"fail":       -2.0,
	"failed":     -2.0,
	"failing":    -2.0,
	"fails":      -2.0,
	"failure":    -2.1,
	"unstable":   -1.9,
	"unreliable": -2.0,
	"unusable":   -2.5,
	"uninstall":  -1.8,
	"uninstalled": -1.8,
	"uninstalling": -1.8,
	"deleted":    -1.2,
	"blocked":    -1.5,
	"locked":     -1.4,
	"rejected":   -1.6,
	"declined":   -1.5,
	"denied":     -1.5,
	"stolen":     -2.4,
	"lost":       -1.6,
	"missing":    -1.3,
	"outdated":   -1.4,
	"confusing":  -1.6,
	"complicated": -1.4,
	"difficult":  -1.4,
	"expensive":  -1.2,
	"waiting":    -0.9,
	"delay":      -1.3,
	"delayed":    -1.4,
	"delays":     -1.3,
	"timeout":    -1.4,
	"disconnect": -1.4,
	"disconnects": -1.5,

	// mild / context words that still carry a lean
	"update":  0.0,
	"updated": 0.0,
	"fix":     -0.6,
	"fixed":   1.2,
	"please":  0.0,
	"problem": -1.5,
	"problems": -1.6,
	"issue":   -1.2,
	"issues":  -1.3,
}

// boosters intensify (positive value) or dampen (negative value) the
// valence of a following sentiment word.
var boosters = map[string]float64{
	"absolutely": 0.293,
	"completely": 0.293,
	"extremely":  0.293,
	"highly":     0.293,
	"incredibly": 0.293,
	"really":     0.267,
	"so":         0.267,
	"super":      0.267,
	"too":        0.267,
	"totally":    0.267,
	"very":       0.267,
	"quite":      0.18,
	"pretty":     0.18,
	"somewhat":   -0.293,
	"slightly":   -0.293,
	"barely":     -0.293,
	"kind":       -0.15,
	"sort":       -0.15,
}

// negators flip the valence of a sentiment word within negationScope.
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"none":    true,
	"nothing": true,
	"neither": true,
	"nor":     true,
	"cannot":  true,
	"cant":    true,
	"dont":    true,
	"doesnt":  true,
	"didnt":   true,
	"wont":    true,
	"wouldnt": true,
	"couldnt": true,
	"isnt":    true,
	"arent":   true,
	"wasnt":   true,
	"without": true,
}
