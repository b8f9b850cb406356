package token

type scanOpts struct {
	depthHint int
}

// ScanOpt configures a [Scanner].
type ScanOpt func(*scanOpts)

// DepthHint tells the scanner how many levels of nesting the caller
// expects, so the bracket stack can be sized up front. Deeper records are
// still scanned correctly.
func DepthHint(n int) ScanOpt {
	return func(o *scanOpts) { o.depthHint = n }
}
