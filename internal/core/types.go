package core

// PropertyType classifies a residential property.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyCondo        PropertyType = "condo"
	PropertyTownhouse    PropertyType = "townhouse"
	PropertyDuplex       PropertyType = "duplex"
)

// PropertyTypes lists every recognized property type.
var PropertyTypes = []PropertyType{
	PropertySingleFamily,
	PropertyMultiFamily,
	PropertyCondo,
	PropertyTownhouse,
	PropertyDuplex,
}

// Condition describes the physical state of a property.
type Condition string

const (
	ConditionExcellent  Condition = "excellent"
	ConditionGood       Condition = "good"
	ConditionFair       Condition = "fair"
	ConditionPoor       Condition = "poor"
	ConditionNeedsRehab Condition = "needs_rehab"
)

// Conditions lists every recognized condition.
var Conditions = []Condition{
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
	ConditionNeedsRehab,
}

// StrategyID identifies an exit strategy.
type StrategyID string

const (
	StrategyWholesale StrategyID = "wholesale"
	StrategyFlip      StrategyID = "flip"
	StrategyHold      StrategyID = "hold"
)

// StrategyPrecedence is the tie-break order when grades and profits are
// equal: wholesale beats flip beats hold.
var StrategyPrecedence = []StrategyID{StrategyWholesale, StrategyFlip, StrategyHold}

// DealType is an offer structure a buyer will transact under. Distinct
// from StrategyID: a wholesale exit is compatible with cash or assignment
// buyers, not with "wholesale buyers".
type DealType string

const (
	DealCash      DealType = "cash"
	DealCreative  DealType = "creative"
	DealSubjectTo DealType = "subject_to"
	DealAssign    DealType = "assignment"
	DealHardMoney DealType = "hard_money"
)

// Overrides carries caller-supplied values that short-circuit estimation.
type Overrides struct {
	ARV           *Money `json:"arv,omitempty"`
	RehabCost     *Money `json:"rehab_cost,omitempty"`
	MarketRent    *Money `json:"market_rent,omitempty"`
	PurchasePrice *Money `json:"purchase_price,omitempty"`
}

// Any reports whether at least one override is set.
func (o Overrides) Any() bool {
	return o.ARV != nil || o.RehabCost != nil || o.MarketRent != nil || o.PurchasePrice != nil
}

// PropertyInput is the raw caller-supplied property record. String fields
// are unvalidated; the normalizer canonicalizes them into PropertyFacts.
type PropertyInput struct {
	Street       string    `json:"street"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SquareFeet   int       `json:"square_feet"`
	YearBuilt    int       `json:"year_built"`
	ListPrice    Money     `json:"list_price"`
	Condition    string    `json:"condition"`
	Overrides    Overrides `json:"overrides"`
}

// PropertyFacts is the normalized form of PropertyInput. City is
// lower-cased and trimmed, state upper-cased, enums canonical.
type PropertyFacts struct {
	Street       string       `json:"street"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	PostalCode   string       `json:"postal_code"`
	PropertyType PropertyType `json:"property_type"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	SquareFeet   int          `json:"square_feet"`
	YearBuilt    int          `json:"year_built"`
	ListPrice    Money        `json:"list_price"`
	Condition    Condition    `json:"condition"`
	Overrides    Overrides    `json:"overrides"`
}

// MarketProfile is per-market pricing data supplied by a Provider.
type MarketProfile struct {
	MedianPricePerSqFt Money   `json:"median_price_per_sqft"`
	RentPerSqFt        Money   `json:"rent_per_sqft"`
	AnnualAppreciation float64 `json:"annual_appreciation"`
}

// IsValid checks the profile invariants.
func (p MarketProfile) IsValid() bool {
	return p.MedianPricePerSqFt >= 0 && p.RentPerSqFt >= 0 && p.AnnualAppreciation >= 0
}

// StrategyResult is one evaluator's verdict on a property.
// MaxOffer is clamped at zero; Profit may be negative; ROI is in
// percentage points and always finite.
type StrategyResult struct {
	Strategy          StrategyID `json:"strategy"`
	ARV               Money      `json:"arv"`
	RehabCost         Money      `json:"rehab_cost"`
	MaxOffer          Money      `json:"max_offer"`
	TargetPrice       Money      `json:"target_price"`
	Profit            Money      `json:"profit"`
	ROI               float64    `json:"roi"`
	Grade             Grade      `json:"grade"`
	HoldingPeriodDays int        `json:"holding_period_days"`
	Confidence        int        `json:"confidence"`
	Notes             []string   `json:"notes,omitempty"`
}

// Result notes for degenerate outcomes.
const (
	NoteDegenerateNoOffer = "DEGENERATE_NO_OFFER"
)

// Buyer is a registered cash buyer's buy-box.
type Buyer struct {
	ID            string         `json:"id"`
	DisplayName   string         `json:"display_name"`
	Contact       string         `json:"contact"`
	PropertyTypes []PropertyType `json:"property_types"`
	PriceFloor    Money          `json:"price_floor"`
	PriceCeiling  Money          `json:"price_ceiling"`
	TargetStates  []string       `json:"target_states"`
	TargetCities  []string       `json:"target_cities"`
	DealTypes     []DealType     `json:"deal_types"`
	Verified      bool           `json:"verified"`
	ProofOfFunds  bool           `json:"proof_of_funds"`
	Rating        *float64       `json:"rating,omitempty"`
	ClosedDeals   int            `json:"closed_deals"`
}

// MatchTier buckets a match score.
type MatchTier string

const (
	TierStrong   MatchTier = "strong"
	TierPossible MatchTier = "possible"
	TierWeak     MatchTier = "weak"
)

// ReasonCode explains one nonzero component of a match score.
type ReasonCode string

const (
	ReasonPropertyTypeMatch ReasonCode = "PROPERTY_TYPE_MATCH"
	ReasonPriceInRange      ReasonCode = "PRICE_IN_RANGE"
	ReasonPriceNearRange    ReasonCode = "PRICE_NEAR_RANGE"
	ReasonStateMatch        ReasonCode = "STATE_MATCH"
	ReasonCityMatch         ReasonCode = "CITY_MATCH"
	ReasonDealTypeMatch     ReasonCode = "DEAL_TYPE_MATCH"
	ReasonVerifiedBuyer     ReasonCode = "VERIFIED_BUYER"
	ReasonProofOfFunds      ReasonCode = "PROOF_OF_FUNDS"
	ReasonReputation        ReasonCode = "REPUTATION"
)

// MatchResult is one buyer's score against a property and strategy.
type MatchResult struct {
	BuyerID string       `json:"buyer_id"`
	Score   int          `json:"score"`
	Reasons []ReasonCode `json:"reasons"`
	Tier    MatchTier    `json:"tier"`
}

// AnalysisReport is the engine's complete output for one property.
type AnalysisReport struct {
	ID          string           `json:"id,omitempty"`
	Facts       PropertyFacts    `json:"facts"`
	Market      MarketProfile    `json:"market_profile_used"`
	Strategies  []StrategyResult `json:"strategy_results"`
	Recommended StrategyID       `json:"recommended_strategy_id"`
	Matches     []MatchResult    `json:"matches"`
	Warnings    []Warning        `json:"warnings,omitempty"`
}
