// Package billing provides the subscription and payout models of the platform.
//
// Key types:
//   - Subscription: a business's plan and its billing-provider status
//   - Plan / Feature: which premium capabilities each plan unlocks
//   - Payout: settlement of booking revenue to a business
//
// Billing state is owned by the payment provider; subscriptions here are a
// projection of the provider's webhook events.
package billing
