package domain

// SentinelLabel is the label written for rows whose evaluation failed.
const SentinelLabel = "NaN"
