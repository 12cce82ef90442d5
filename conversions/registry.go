package conversions

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Config assembles the inputs for a registry. It is consumed once by New and
// not retained.
type Config struct {
	// Store provides the store's simple type classifier and its converters.
	Store StoreConversions

	// Converters are user-supplied candidates. They are never filtered and
	// win over store and default registrations for the same pair.
	Converters []Candidate

	// Defaults overrides the built-in converter set. When nil,
	// DefaultConverters() is used.
	Defaults []Candidate

	// SkipDefaults suppresses individual built-in default pairs. User and
	// store registrations are never suppressed.
	SkipDefaults []TypePair

	// Logger receives misconfiguration warnings and pipeline traces.
	// Nop when nil.
	Logger *zap.Logger
}

// Conversions is the built registry. All sets are frozen after New; the two
// resolution caches are the only mutable state and are safe for concurrent
// use.
type Conversions struct {
	simple     *SimpleTypes
	converters []Candidate

	readingPairs *pairSet
	writingPairs *pairSet

	readTargets  targetCache
	writeTargets targetCache

	readStats  cacheCounters
	writeStats cacheCounters

	logger *zap.Logger
}

// Registrar is the registration surface of a conversion engine. Converters
// are handed over in precedence order, built-in defaults first and user
// converters last, so engines that favor later registrations resolve ties
// the same way this registry does.
type Registrar interface {
	RegisterConverter(c Converter)
	RegisterFactory(f Factory)
	RegisterMulti(m MultiConverter)
}

// New builds a registry from the given configuration. Construction fails as
// a whole on the first invalid or unsupported converter; there is no partial
// success.
func New(cfg Config) (*Conversions, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := cfg.Store
	if store.Simple == nil {
		store.Simple = NewSimpleTypes()
	}

	defaults := cfg.Defaults
	if defaults == nil {
		defaults = DefaultConverters()
	}

	intents, err := collectIntents(store, cfg.Converters, defaults)
	if err != nil {
		return nil, err
	}

	skip := make(map[TypePair]struct{}, len(cfg.SkipDefaults))
	for _, p := range cfg.SkipDefaults {
		skip[p] = struct{}{}
	}

	c := &Conversions{
		readingPairs: newPairSet(),
		writingPairs: newPairSet(),
		logger:       logger,
	}

	customSimple := make(map[reflect.Type]struct{})
	seen := make(map[any]struct{})
	var handles []Candidate

	for _, in := range intents {
		if !accepts(in) {
			logger.Debug("skipping converter: not a store supported simple type",
				zap.Stringer("pair", in.pair),
				zap.Stringer("origin", in.origin))
			continue
		}
		if _, suppressed := skip[in.pair]; suppressed && in.isDefault() {
			logger.Debug("suppressing default converter",
				zap.Stringer("pair", in.pair))
			continue
		}

		c.register(in.registration, customSimple)
		logger.Debug("adding converter",
			zap.Stringer("pair", in.pair),
			zap.Stringer("origin", in.origin))

		key := handleKey(in.converter)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			handles = append(handles, in.converter)
		}
	}

	// The forward pass runs user first, so reversing leaves user handles
	// last: engines that favor later registrations then agree with the
	// pair-set precedence.
	slices.Reverse(handles)
	c.converters = handles
	c.simple = store.Simple.withCustom(customSimple)

	return c, nil
}

// collectIntents expands all candidates into origin-tagged registrations,
// user first, then store, then defaults.
func collectIntents(store StoreConversions, user, defaults []Candidate) ([]intent, error) {
	var intents []intent
	add := func(candidates []Candidate, o origin) error {
		for _, cand := range candidates {
			regs, err := store.registrationsFor(cand)
			if err != nil {
				return err
			}
			for _, r := range regs {
				intents = append(intents, intent{registration: r, origin: o})
			}
		}
		return nil
	}
	if err := add(user, originUser); err != nil {
		return nil, err
	}
	if err := add(store.Converters, originStore); err != nil {
		return nil, err
	}
	if err := add(defaults, originDefault); err != nil {
		return nil, err
	}
	return intents, nil
}

// accepts applies the origin-scoped acceptance rule: user registrations
// always pass, others only when they touch a store-simple type on the
// relevant side.
func accepts(in intent) bool {
	return in.isUser() ||
		(in.isReading() && in.isSimpleSource()) ||
		(in.isWriting() && in.isSimpleTarget())
}

// register adds the registration's pair to the reading and/or writing sets
// and propagates writing sources into the custom simple types. A non-simple
// side indicates a probable capability misconfiguration and is logged but
// never rejected.
func (c *Conversions) register(r registration, customSimple map[reflect.Type]struct{}) {
	if r.isReading() {
		c.readingPairs.add(r.pair)
		if !r.isSimpleSource() {
			c.logger.Warn("reading converter does not convert from a store-supported type; check its declared capability",
				zap.Stringer("pair", r.pair))
		}
	}
	if r.isWriting() {
		c.writingPairs.add(r.pair)
		customSimple[r.pair.Source] = struct{}{}
		if !r.isSimpleTarget() {
			c.logger.Warn("writing converter does not convert to a store-supported type; check its declared capability",
				zap.Stringer("pair", r.pair))
		}
	}
}

// handleKey derives a comparable identity for a converter handle so the final
// list can be deduplicated; multi-pair expansion yields one registration per
// pair but only one handle.
//
// A func value's pointer is a code pointer: every closure produced by one
// constructor shares it. The declared pair and capability therefore always
// participate in the key. Closures that still collide (same code, same pair,
// same capability) dedup to the first seen, which is the highest-precedence
// origin after the final reversal.
func handleKey(c Candidate) any {
	switch c := c.(type) {
	case Converter:
		return converterKey{c.Source, c.Target, reflect.ValueOf(c.Fn).Pointer(), c.Cap}
	case Factory:
		return factoryKey{c.Source, c.Target, reflect.ValueOf(c.New).Pointer(), c.Cap}
	case MultiConverter:
		return multiKey(c)
	default:
		return c
	}
}

type converterKey struct {
	source, target reflect.Type
	fn             uintptr
	cap            Capability
}

type factoryKey struct {
	source, target reflect.Type
	fn             uintptr
	cap            Capability
}

// multiKey folds every declared pair into the identity. Type identities are
// written as the pointers behind the reflect.Type interfaces, which are unique
// per type within a program.
func multiKey(m MultiConverter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "multi|%x|%v", reflect.ValueOf(m.Fn).Pointer(), m.Cap)
	for _, p := range m.Pairs {
		fmt.Fprintf(&b, "|%x>%x", reflect.ValueOf(p.Source).Pointer(), reflect.ValueOf(p.Target).Pointer())
	}
	return b.String()
}

// IsSimpleType reports whether the given type is store-simple, either
// intrinsically or because a writing converter was registered for it.
func (c *Conversions) IsSimpleType(t reflect.Type) bool {
	mustType("checked", t)
	return c.simple.IsSimple(t)
}

// SimpleTypes returns the frozen classifier backing IsSimpleType.
func (c *Conversions) SimpleTypes() *SimpleTypes {
	return c.simple
}

// WriteTarget returns the store-native type the given source type converts
// to, if a writing conversion is registered for it.
func (c *Conversions) WriteTarget(source reflect.Type) (reflect.Type, bool) {
	mustType("source", source)
	return c.lookup(&c.writeTargets, &c.writeStats, source, nil, c.writingPairs)
}

// WriteTargetTo confirms convertibility of source to one specific target
// type. The returned type may be a subtype of the requested one.
func (c *Conversions) WriteTargetTo(source, target reflect.Type) (reflect.Type, bool) {
	mustType("source", source)
	mustType("target", target)
	return c.lookup(&c.writeTargets, &c.writeStats, source, target, c.writingPairs)
}

// HasWriteTarget reports whether a writing conversion exists for source.
func (c *Conversions) HasWriteTarget(source reflect.Type) bool {
	_, ok := c.WriteTarget(source)
	return ok
}

// HasWriteTargetTo reports whether source can be written as target.
func (c *Conversions) HasWriteTargetTo(source, target reflect.Type) bool {
	_, ok := c.WriteTargetTo(source, target)
	return ok
}

// HasReadTarget reports whether a reading conversion from the store-native
// source type to the given application target type is registered.
func (c *Conversions) HasReadTarget(source, target reflect.Type) bool {
	_, ok := c.readTarget(source, target)
	return ok
}

func (c *Conversions) readTarget(source, target reflect.Type) (reflect.Type, bool) {
	mustType("source", source)
	mustType("target", target)
	return c.lookup(&c.readTargets, &c.readStats, source, target, c.readingPairs)
}

func (c *Conversions) lookup(cache *targetCache, counters *cacheCounters, source, requested reflect.Type, pairs *pairSet) (reflect.Type, bool) {
	target, ok, hit := cache.computeIfAbsent(source, requested, func(src, req reflect.Type) reflect.Type {
		counters.scans.Add(1)
		return pairs.find(src, req)
	})
	if hit {
		counters.hits.Add(1)
	} else {
		counters.misses.Add(1)
	}
	return target, ok
}

// RegisterConvertersIn hands the final converter list to an external engine,
// dispatching each handle by its shape and recursing into composites.
func (c *Conversions) RegisterConvertersIn(r Registrar) error {
	if r == nil {
		panic("conversions: registrar must not be nil")
	}
	for _, h := range c.converters {
		if err := registerIn(h, r); err != nil {
			return err
		}
	}
	return nil
}

func registerIn(c Candidate, r Registrar) error {
	switch c := c.(type) {
	case Converter:
		r.RegisterConverter(c)
	case Factory:
		r.RegisterFactory(c)
	case MultiConverter:
		r.RegisterMulti(c)
	case Set:
		for _, sub := range c.Converters {
			if err := registerIn(sub, r); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedConverter, c)
	}
	return nil
}

// ReadingPairs returns the registered reading pairs in precedence order.
func (c *Conversions) ReadingPairs() []TypePair {
	return slices.Clone(c.readingPairs.ordered)
}

// WritingPairs returns the registered writing pairs in precedence order.
func (c *Conversions) WritingPairs() []TypePair {
	return slices.Clone(c.writingPairs.ordered)
}

// Stats reports resolution cache activity since construction.
type Stats struct {
	ReadHits    uint64
	ReadMisses  uint64
	ReadScans   uint64
	WriteHits   uint64
	WriteMisses uint64
	WriteScans  uint64
}

func (c *Conversions) Stats() Stats {
	return Stats{
		ReadHits:    c.readStats.hits.Load(),
		ReadMisses:  c.readStats.misses.Load(),
		ReadScans:   c.readStats.scans.Load(),
		WriteHits:   c.writeStats.hits.Load(),
		WriteMisses: c.writeStats.misses.Load(),
		WriteScans:  c.writeStats.scans.Load(),
	}
}

type cacheCounters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
	scans  atomic.Uint64
}

// pairSet is an insertion-ordered set of pairs. Iteration order is part of
// the resolution contract: first match wins, and insertion runs user, store,
// then default registrations.
type pairSet struct {
	ordered []TypePair
	members map[TypePair]struct{}
}

func newPairSet() *pairSet {
	return &pairSet{members: make(map[TypePair]struct{})}
}

func (s *pairSet) add(p TypePair) {
	if _, ok := s.members[p]; ok {
		return
	}
	s.members[p] = struct{}{}
	s.ordered = append(s.ordered, p)
}

func (s *pairSet) contains(p TypePair) bool {
	_, ok := s.members[p]
	return ok
}

// find locates the most specific matching pair for source and an optional
// requested target. An exact pair short-circuits; otherwise the first pair in
// iteration order whose declared source is a supertype-or-equal of source,
// and whose target is a subtype-or-equal of the requested one, wins.
func (s *pairSet) find(source, requested reflect.Type) reflect.Type {
	if requested != nil && s.contains(TypePair{Source: source, Target: requested}) {
		return requested
	}
	for _, p := range s.ordered {
		if !source.AssignableTo(p.Source) {
			continue
		}
		if requested != nil && !p.Target.AssignableTo(requested) {
			continue
		}
		return p.Target
	}
	return nil
}
