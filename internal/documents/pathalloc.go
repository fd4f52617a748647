package documents

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// AllocatePath generates a collision-free storage path for an upload,
// namespaced under the user's identifier so per-user enumeration and
// cleanup stay structurally possible. The base name is replaced by a fresh
// random token, which avoids collisions between concurrent uploads and
// keeps the original filename out of the public locator; only the
// extension, if any, is preserved.
func AllocatePath(userID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return userID + "/" + uuid.NewString() + ext
}
