/*
Package observability provides lifecycle hooks for monitoring the augmenter engine:
prometheus metrics for shaping calls and configuration builds, and structured audit logs.

Hooks from both can be combined with domain.ChainHooks.
*/
package observability
