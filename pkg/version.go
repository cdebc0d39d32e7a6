package feelio

// Version is the current version of the feelio application and its packages.
const Version = "0.1.0"
