package utils

const DefaultBufferSize = 1024 * 256 // 256KB buffer
const DefaultTargetDir = "data"
const PartSuffix = ".part"
const FallbackFileName = "download"

var Version = "dev"
var ToolUserAgent = "recipeqa-fetch/" + Version
