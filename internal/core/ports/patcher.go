package ports

// Patcher applies named literal-substitution patches to an extracted source
// tree. The resolver and renderer never depend on patching details.
//
//go:generate go run go.uber.org/mock/mockgen -source=patcher.go -destination=mocks/mock_patcher.go -package=mocks
type Patcher interface {
	// Apply applies the named patch to the source tree rooted at sourceDir.
	// applied is false when the patch's target text is absent, which is the
	// case on a source tree that was already patched.
	Apply(sourceDir, patchID string) (applied bool, err error)
}
