package providers

// storeDirName is the Badger directory under the configured data path.
const storeDirName = "overrides"
