/*
Copyright © 2025 Axon Dendrite <axondendriteplus@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var verbose bool

// newLogger builds the logger passed into the extractor and API client.
// Default output is warnings only so progress text on stderr stays readable.
func newLogger() *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, _ := cfg.Build()
	return logger
}

// deviceFrom pulls the compute device out of the model metadata, if present.
func deviceFrom(modelInfo map[string]any) string {
	if modelInfo == nil {
		return ""
	}
	if device, ok := modelInfo["device"].(string); ok {
		return device
	}
	return ""
}
