package domain

// Stock and quantity sentinels
const (
	// UnlimitedQuantity marks a system offer or listing that never runs out
	UnlimitedQuantity int64 = -1

	// MaxTradeQuantity caps a single purchase, listing or refund
	MaxTradeQuantity = 9999
)

// Offer sources
const (
	OfferSourceSystem OfferSource = "system"
	OfferSourcePlayer OfferSource = "player"
)

// Recipe kinds
const (
	RecipeKindAlchemy RecipeKind = "alchemy" // pill recipes
	RecipeKindForge   RecipeKind = "forge"   // equipment blueprints
)

// Craft outcomes
const (
	CraftSuccess CraftOutcome = "success"
	CraftFailure CraftOutcome = "failure"
)

// Coordinator flow names, used in receipts, logs and metric labels
const (
	FlowPurchase        = "purchase"
	FlowCreateListing   = "create_listing"
	FlowWithdrawListing = "withdraw_listing"
	FlowForfeitListing  = "forfeit_listing"
	FlowCraft           = "craft"
	FlowRestock         = "restock"
)

// Item categories seen in the reference data
const (
	CategoryHerb      = "herb"
	CategoryOre       = "ore"
	CategoryPill      = "pill"
	CategoryEquipment = "equipment"
	CategoryMaterial  = "material"
)

// Item grades replace the legacy practice of reading the grade out of the item name
const (
	GradeMortal   = "mortal"
	GradeSpirit   = "spirit"
	GradeEarth    = "earth"
	GradeHeaven   = "heaven"
	GradeImmortal = "immortal"
)

// DefaultRealm is the cultivation realm assigned to new accounts
const DefaultRealm = "qi_refining"
