package ephemeris

// moonTerm is one periodic term of the lunar longitude: coefficient (degrees)
// times the sine of d·D + m·M + mp·M' + f·F.
type moonTerm struct {
	d, m, mp, f int
	coeff       float64
}

// The thirteen largest longitude terms of the ELP-2000/82 series (Meeus ch. 47).
// Truncation error is a few arc-minutes.
var moonTerms = [...]moonTerm{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
}

func moonLongitude(T float64) float64 {
	meanLon := 218.3164477 + 481267.88123421*T
	elong := 297.8501921 + 445267.1114034*T
	sunAnomaly := 357.5291092 + 35999.0502909*T
	moonAnomaly := 134.9633964 + 477198.8675055*T
	latArg := 93.2720950 + 483202.0175233*T

	lon := meanLon
	for _, term := range moonTerms {
		arg := float64(term.d)*elong +
			float64(term.m)*sunAnomaly +
			float64(term.mp)*moonAnomaly +
			float64(term.f)*latArg
		lon += term.coeff * sinDeg(arg)
	}
	return NormalizeDegrees(lon)
}
