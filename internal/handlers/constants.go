package handlers

import "time"

// uploadFieldName is the multipart form field carrying homework files
const uploadFieldName = "files"

// timeNow is swapped out in tests
var timeNow = time.Now
