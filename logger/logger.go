// Package logger provides adapters for popular logger libraries to work with bptree's Logger interface.
//
// The tree reports structural events through the interface: root growth and
// collapse at Info, an unusable lookup cache configuration at Warn and failed
// verification at Error. The standard library's slog.Logger already
// implements bptree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "bptree"
//	    "bptree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree, err := bptree.New[int, string](32,
//	        bptree.WithLogger(logger.NewZap(zapLogger)),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//	    tree.Insert(1, "one")
//	}
package logger
