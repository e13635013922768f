// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	KeyRateLimited = "rate_limited"

	// Catalog
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyCategoryUnknown   = "category.unknown"

	// Cart
	KeyCartCleared         = "cart.cleared"
	KeyCartItemNotFound    = "cart.item.not_found"
	KeyCartEmpty           = "cart.empty"
	KeyCartInvalidQuantity = "cart.invalid_quantity"
	KeyCartQuantityLimit   = "cart.quantity_limit"

	// Checkout
	KeyCheckoutInFlight    = "checkout.in_flight"
	KeyCheckoutUnavailable = "checkout.unavailable"
	KeyCheckoutValid       = "checkout.valid"

	// Orders
	KeyOrderNotFound      = "order.not_found"
	KeyOrderTotalMismatch = "order.total_mismatch"
	KeyOrderNoItems       = "order.no_items"

	// Payments
	KeyPaymentSuccess         = "payment.success"
	KeyPaymentFailed          = "payment.failed"
	KeyPaymentInvalidCallback = "payment.invalid_callback"
	KeyPaymentUnknownProvider = "payment.unknown_provider"

	// Contact
	KeyContactSent      = "contact.sent"
	KeyNewsletterJoined = "newsletter.joined"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	KeyEmailRequired      = "validation.email.required"
	KeyEmailInvalid       = "validation.email.invalid"
	KeyEmailInvalidLong   = "validation.email.invalid_address"
	KeyFirstNameRequired  = "validation.first_name.required"
	KeyLastNameRequired   = "validation.last_name.required"
	KeyAddressRequired    = "validation.address.required"
	KeyCityRequired       = "validation.city.required"
	KeyStateRequired      = "validation.state.required"
	KeyZipRequired        = "validation.zip.required"
	KeyZipInvalid         = "validation.zip.invalid"
	KeyPhoneInvalid       = "validation.phone.invalid"
	KeyCardNameRequired   = "validation.card_name.required"
	KeyCardNumberRequired = "validation.card_number.required"
	KeyCardNumberInvalid  = "validation.card_number.invalid"
	KeyExpiryRequired     = "validation.expiry.required"
	KeyExpiryInvalid      = "validation.expiry.invalid"
	KeyCVVRequired        = "validation.cvv.required"
	KeyCVVInvalid         = "validation.cvv.invalid"
	KeyNameRequired       = "validation.name.required"
	KeyNameTooShort       = "validation.name.too_short"
	KeySubjectRequired    = "validation.subject.required"
	KeyMessageRequired    = "validation.message.required"
	KeyMessageTooShort    = "validation.message.too_short"
)
