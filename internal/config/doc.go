// Package config resolves the build configuration of a single project.
//
// Resolution takes a raw configuration document and the project's
// package.json and produces one fully-defaulted ProjectConfig:
//  1. The raw document is checked against the configuration schema. A
//     mismatch is reported as a warning and resolution continues; any other
//     validation failure aborts.
//  2. Every field is looked up by dotted path with a default. Only a missing
//     path takes the default; explicit false or 0 are kept.
//  3. Derived fields are computed: framework flags from the manifest, the
//     client files path, and the CDN URL and unprocessed-module predicate,
//     both of which are evaluated on demand.
//
// Load locates the inputs on disk before resolving. The raw document is the
// first match while walking up from the working directory, stopping at the
// directory holding package.json:
//   - yoshi.config.toml
//   - yoshi.config.yaml / yoshi.config.yml
//   - yoshi.config.json
//   - .yoshirc (JSON)
//   - the "yoshi" section of package.json
//
// YOSHI_* environment variables override individual keys afterwards.
//
// The resolved config is meant to be built once at startup and passed to
// its consumers explicitly; it is not mutated after Resolve returns.
package config
