package consts

import "os"

// ModeFile is the standard file mode for creating files
const ModeFile = os.FileMode(0o644)
