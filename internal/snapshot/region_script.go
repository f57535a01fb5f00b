package snapshot

// regionScript is the in-page query behind the region partitioner. It
// evaluates the shell's literal selector groups, filters matches to
// on-screen rendered elements, deduplicates by DOM containment (outermost
// wins) and returns one structurally unique selector per surviving root.
// FAB detection runs here too: literal id/class token or the
// floating-control heuristic.
func regionScript() string {
	return `(opts) => {
		const onScreen = (el) => {
			const rect = el.getBoundingClientRect();
			if (rect.width <= 0 || rect.height <= 0) return false;
			const style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden' || parseFloat(style.opacity) === 0) return false;
			if (rect.right <= 0 || rect.bottom <= 0) return false;
			if (rect.left >= window.innerWidth || rect.top >= window.innerHeight) return false;
			return true;
		};

		const outermost = (els) => {
			return els.filter(el => !els.some(other => other !== el && other.contains(el)));
		};

		const buildSelector = (el) => {
			if (el.id && document.querySelectorAll('#' + CSS.escape(el.id)).length === 1) {
				return '#' + CSS.escape(el.id);
			}
			const segments = [];
			let current = el;
			let hops = 0;
			while (current && current.tagName && hops < 6) {
				let segment = current.tagName.toLowerCase();
				const className = typeof current.className === 'string' ? current.className : '';
				const firstClass = className.trim().split(/\s+/).filter(Boolean)[0];
				if (firstClass) {
					segment += '.' + CSS.escape(firstClass);
				}
				const parent = current.parentElement;
				if (parent) {
					const sameTag = Array.from(parent.children).filter(ch => ch.tagName === current.tagName);
					if (sameTag.length > 1) {
						segment += ':nth-of-type(' + (sameTag.indexOf(current) + 1) + ')';
					}
				}
				segments.unshift(segment);
				current = parent;
				hops++;
			}
			return segments.join(' > ');
		};

		const collectGroup = (selectors) => {
			const matches = [];
			for (const sel of selectors) {
				let found;
				try {
					found = document.querySelectorAll(sel);
				} catch (e) {
					continue;
				}
				for (const el of found) {
					if (onScreen(el) && !matches.includes(el)) {
						matches.push(el);
					}
				}
			}
			return outermost(matches).map(buildSelector);
		};

		const FAB_TOKEN = /(^|[-_])fab($|[-_])/i;
		const CIRCLE_TOKEN = /(^|[-_])circle($|[-_])/i;
		const NATIVE_TAGS = ['a', 'button', 'input', 'select', 'textarea', 'details', 'summary'];
		const INTERACTIVE_ROLES = [
			'button', 'link', 'textbox', 'checkbox', 'radio', 'combobox', 'listbox',
			'menuitem', 'menuitemcheckbox', 'menuitemradio', 'option', 'searchbox',
			'slider', 'spinbutton', 'switch', 'tab', 'treeitem'
		];

		const classTokens = (el) => {
			const className = typeof el.className === 'string' ? el.className : '';
			return className.trim().split(/\s+/).filter(Boolean);
		};

		const hasFabToken = (el) => {
			if (el.id && FAB_TOKEN.test(el.id)) return true;
			return classTokens(el).some(token => FAB_TOKEN.test(token));
		};

		const isInteractiveControl = (el, style) => {
			if (NATIVE_TAGS.includes(el.tagName.toLowerCase())) return true;
			const role = (el.getAttribute('role') || '').toLowerCase();
			if (INTERACTIVE_ROLES.includes(role)) return true;
			if (style.cursor === 'pointer') return true;
			if (el.hasAttribute('onclick') || typeof el.onclick === 'function') return true;
			const tabAttr = el.getAttribute('tabindex');
			return tabAttr !== null && parseInt(tabAttr, 10) >= 0;
		};

		const isRounded = (el, style, rect) => {
			if (classTokens(el).some(token => CIRCLE_TOKEN.test(token))) return true;
			const radius = parseFloat(style.borderRadius);
			if (isNaN(radius)) return false;
			return radius >= Math.min(rect.width, rect.height) * opts.fab.radiusRatio;
		};

		const isFloatingControl = (el) => {
			const rect = el.getBoundingClientRect();
			const style = window.getComputedStyle(el);
			const position = style.position;
			if (position !== 'fixed' && position !== 'sticky') {
				const zIndex = parseInt(style.zIndex, 10);
				if (position !== 'absolute' || isNaN(zIndex) || zIndex < opts.fab.minZIndex) return false;
			}
			const minSide = Math.min(rect.width, rect.height);
			const maxSide = Math.max(rect.width, rect.height);
			if (minSide < opts.fab.minSide || minSide > opts.fab.maxSide || maxSide > opts.fab.maxSide) return false;
			if (window.innerWidth - rect.right > opts.fab.cornerRange) return false;
			if (window.innerHeight - rect.bottom > opts.fab.cornerRange) return false;
			if (!isInteractiveControl(el, style)) return false;
			return isRounded(el, style, rect);
		};

		const collectFab = () => {
			const matches = [];
			for (const el of document.querySelectorAll('*')) {
				if (!onScreen(el)) continue;
				if (hasFabToken(el) || isFloatingControl(el)) {
					matches.push(el);
				}
			}
			return outermost(matches).map(buildSelector);
		};

		return {
			sidebar: collectGroup(opts.sidebar),
			contents: collectGroup(opts.contents),
			drawer: collectGroup(opts.drawer),
			fab: collectFab()
		};
	}`
}
