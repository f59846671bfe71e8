// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [StateRepository]: Persists and loads the last posted percent
//   - [ImageRenderer]: Renders the revealed image for a percent
//   - [MediaUploader]: Uploads image bytes to the platform
//   - [PostCreator]: Creates a post referencing uploaded media
//   - [ImageArchive]: Copies rendered images to object storage
//   - [RunLock]: Guards against overlapping invocations
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (file system, HTTP, zerolog, etc.).
package ports
