// Package medium imports posts from a Medium HTML export into the resource
// repository. Posts are discovered under <export>/posts, parsed, mapped onto
// resources and saved, with optional before-save and after-save hooks and a
// per-post outcome report.
package medium
