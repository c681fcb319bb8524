// Package zaphandler bridges handler.Handler to go.uber.org/zap, so an
// application that already configured a zap core can receive the same
// entries as the console and file handlers.
package zaphandler
