package driver

import (
	"strconv"

	"risp/internal/project"
	"risp/internal/version"
)

// cacheKey: H(content || version || schema). A new CLI version or payload
// schema never reads entries written by another one.
func cacheKey(content []byte) project.Digest {
	return project.Combine(project.HashContent(content), version.Version, strconv.FormatUint(uint64(diskCacheSchemaVersion), 10))
}
