package pricing

import "github.com/iceonwheels/storefront-backend/pkg/enums"

// staticPromotions is the built-in fallback table consulted when the
// admin registry has no match. Fixed values are rupees expressed in
// minor units.
var staticPromotions = []Promotion{
	{Code: "WELCOME10", Kind: enums.PromoKindPercentage, Value: 10},
	{Code: "SAVE50", Kind: enums.PromoKindFixed, Value: 5000},
	{Code: "ICE20", Kind: enums.PromoKindPercentage, Value: 20},
	{Code: "FRESH15", Kind: enums.PromoKindFixed, Value: 1500},
}
