package conversions

// origin tags where a registration came from. Precedence is user over store
// over default; default registrations are also the only ones subject to
// skip-set suppression.
type origin int

const (
	originDefault origin = iota
	originStore
	originUser
)

func (o origin) String() string {
	switch o {
	case originUser:
		return "user"
	case originStore:
		return "store"
	default:
		return "default"
	}
}

// registration couples one converter handle with a declared pair and its
// reading/writing intent against the store's simple types.
type registration struct {
	converter Candidate
	pair      TypePair
	reading   bool
	writing   bool
	simple    *SimpleTypes
}

// isWriting derives the effective writing intent: declared, or undeclared
// with a store-simple target.
func (r registration) isWriting() bool {
	return r.writing || (!r.reading && r.isSimpleTarget())
}

// isReading derives the effective reading intent: declared, or undeclared
// with a store-simple source when writing was not already claimed.
func (r registration) isReading() bool {
	return r.reading || (!r.writing && r.isSimpleSource())
}

func (r registration) isSimpleSource() bool {
	return r.simple.IsSimple(r.pair.Source)
}

func (r registration) isSimpleTarget() bool {
	return r.simple.IsSimple(r.pair.Target)
}

// intent adds origin information so acceptance and suppression can be scoped
// per provenance.
type intent struct {
	registration
	origin origin
}

func (i intent) isUser() bool    { return i.origin == originUser }
func (i intent) isDefault() bool { return i.origin == originDefault }
