package ft8

// GoodQSO is a clean six-message pounce exchange.
var GoodQSO = []string{
	"012545   5  0.2 1608 ~ CQ BI4VNM PM01            ",
	"012604  Tx      1555 ~  BI4VNM DU3TW PK05         ",
	"012815   2  0.0 1610 ~  DU3TW Bi4VNM +00         ",
	"012815   2  0.0 1610 ~  Bi4VNM DU3TW -05         ",
	"012815   2  0.0 1610 ~  DU3TW Bi4VNM  RRR         ",
	"012815   2  0.0 1610 ~  Bi4VNM DU3TW  RR73         ",
}

// NoisyQSO is the same exchange with garbled decodes interleaved.
var NoisyQSO = []string{
	"012545   5  0.2 1608 ~ CQ BI4VNM PM01            ",
	"012604  Tx      1555 ~  BI 4V DTW PK05         ",
	"012604  Tx      1555 ~  BI4VNM DU3TW PK05         ",
	"012815   2  0.0 1610 ~  DU3TW Bi4VNM +00         ",
	"012815   2  0.0 1610 ~  Bi4VM DUW 5",
	"012815   2  0.0 1610 ~  Bi4VNM DU3TW -05         ",
	"012815   2  0.0 1610 ~  DU3TW Bi4VNM  RRR         ",
	"012815   2  0.0 1610 ~  Bi4VNM DU3TW  RR73         ",
}

// Fixtures maps fixture names to record lines.
var Fixtures = map[string][]string{
	"good":  GoodQSO,
	"noisy": NoisyQSO,
}
